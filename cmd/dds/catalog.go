package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/cli"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the variable catalog",
		Long: `Show the variable catalog: every data category and variable the
registered providers can produce, with their qualified names.`,
		RunE: runCatalog,
	}

	cmd.Flags().StringP("provider", "p", "", "Show only one provider's catalog")
	cmd.Flags().Bool("json", false, "Emit the catalog as JSON")

	_ = viper.BindPFlag("catalog.provider", cmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("catalog.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runCatalog(_ *cobra.Command, _ []string) error {
	providerType := viper.GetString("catalog.provider")

	if providerType != "" {
		schemas, err := catalog.ForProvider(providerType)
		if err != nil {
			return err
		}
		if viper.GetBool("catalog.json") {
			return emitJSON(schemas)
		}
		printCategorySchemas(providerType, schemas)
		return nil
	}

	all := catalog.All()
	if viper.GetBool("catalog.json") {
		return emitJSON(all)
	}

	fmt.Println(cli.FormatTitle("Variable catalog"))
	printVariableTable(all)
	return nil
}

func printCategorySchemas(providerType string, schemas []catalog.CategorySchema) {
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Catalog for %s", providerType)))
	for _, cs := range schemas {
		fmt.Printf("%s (%s)\n", cli.HeaderStyle.Render(cs.Label), cs.Value)
		if len(cs.BuiltinVariables) > 0 {
			fmt.Println(cli.SubtleStyle.Render("  built-in variables:"))
			printVariableTable(cs.BuiltinVariables)
		}
		if cs.CustomVariablesEnabled {
			fmt.Println(cli.SubtleStyle.Render("  custom variable attributes:"))
			for _, attr := range cs.CVAttributes {
				fmt.Printf("    %s%s\n",
					cli.CellStyle.Render(attr.Name),
					cli.SubtleStyle.Render(fmt.Sprintf("(%s, field %q)", attr.DataType, attr.FieldKey)))
			}
		}
		fmt.Println()
	}
}

func printVariableTable(variables []catalog.VariableSchema) {
	for _, v := range variables {
		fmt.Printf("    %s%s\n",
			cli.CellStyle.Render(v.Name),
			cli.SubtleStyle.Render(fmt.Sprintf("(%s) %s", v.DataType, v.Label)))
	}
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
