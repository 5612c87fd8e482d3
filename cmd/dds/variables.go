package main

import (
	"fmt"
	"os"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/cli"
	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
	"github.com/datadonation/dds/internal/resolve"
	"github.com/datadonation/dds/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func variablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variables",
		Short: "Manage custom variables and enabled built-ins",
	}

	cmd.AddCommand(variablesAddCmd())
	cmd.AddCommand(variablesListCmd())
	cmd.AddCommand(variablesEnableCmd())
	cmd.AddCommand(variablesDisableCmd())
	cmd.AddCommand(variablesDeleteCmd())

	return cmd
}

func variablesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a custom variable from a JSON spec file",
		RunE:  runVariablesAdd,
	}

	cmd.Flags().StringP("file", "f", "", "Path to the custom variable spec (JSON)")
	_ = cmd.MarkFlagRequired("file")
	_ = viper.BindPFlag("variables.file", cmd.Flags().Lookup("file"))

	return cmd
}

func runVariablesAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(viper.GetString("variables.file"))
	if err != nil {
		return fmt.Errorf("failed to read spec file: %w", err)
	}

	cv, err := model.DecodeCustomVariable(data)
	if err != nil {
		return err
	}

	// Validate against the catalog before storing; a spec that cannot build
	// a resolver would only fail later, at resolution time.
	if _, err := resolve.NewResolver(cv); err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveCustomVariable(ctx, &cv); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved custom variable %q (%s)",
		cv.VariableName, cv.QualifiedName())))
	return nil
}

func variablesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored variables for a project",
		RunE:  runVariablesList,
	}

	cmd.Flags().StringP("provider", "p", "", "Filter by provider")
	_ = viper.BindPFlag("variables.provider", cmd.Flags().Lookup("provider"))

	return cmd
}

func runVariablesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	providerType := viper.GetString("variables.provider")

	customs, err := store.ListCustomVariables(ctx, service.VariableFilter{Provider: providerType})
	if err != nil {
		return err
	}
	builtins, err := store.ListEnabledBuiltins(ctx, providerType)
	if err != nil {
		return err
	}

	used, err := resolve.UsedVariables(builtins, customs)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Variables in use"))
	if len(used) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  none"))
		return nil
	}
	for _, v := range used {
		fmt.Printf("  %s%s\n",
			cli.CellStyle.Render(v.Name),
			cli.SubtleStyle.Render(fmt.Sprintf("(%s, %s)", v.Source, v.DataType)))
	}
	return nil
}

func variablesEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <qualified-name>",
		Short: "Enable a built-in variable by qualified name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setBuiltinEnabled(cmd, args[0], true)
		},
	}
}

func variablesDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <qualified-name>",
		Short: "Disable a built-in variable by qualified name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setBuiltinEnabled(cmd, args[0], false)
		},
	}
}

func setBuiltinEnabled(cmd *cobra.Command, qualifiedName string, enabled bool) error {
	if enabled {
		if _, _, _, ok := catalog.FindBuiltin(qualifiedName); !ok {
			return fmt.Errorf("builtin variable %q: %w", qualifiedName, common.ErrNotFound)
		}
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SetBuiltinEnabled(cmd.Context(), qualifiedName, enabled); err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s %s", state, qualifiedName)))
	return nil
}

func variablesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <provider> <variable-name>",
		Short: "Delete a stored custom variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCustomVariable(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted custom variable %q", args[1])))
			return nil
		},
	}
	return cmd
}
