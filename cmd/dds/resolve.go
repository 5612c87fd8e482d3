package main

import (
	"fmt"
	"log/slog"

	"github.com/datadonation/dds/internal/cli"
	"github.com/datadonation/dds/internal/model"
	"github.com/datadonation/dds/internal/provider"
	"github.com/datadonation/dds/internal/resolve"
	"github.com/datadonation/dds/internal/service"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve enabled variables for one respondent",
		Long: `Resolve all enabled variables of a provider against one stored
connection. The output map is printed as JSON, ready to be pushed into the
survey platform as embedded data.`,
		RunE: runResolve,
	}

	cmd.Flags().StringP("connection", "c", "", "Connection ID to resolve against")
	cmd.Flags().Bool("catalog-only", false, "Resolve without fetching records (display mode)")
	_ = cmd.MarkFlagRequired("connection")

	_ = viper.BindPFlag("resolve.connection", cmd.Flags().Lookup("connection"))
	_ = viper.BindPFlag("resolve.catalog_only", cmd.Flags().Lookup("catalog-only"))

	return cmd
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	conn, err := store.GetConnection(ctx, viper.GetString("resolve.connection"))
	if err != nil {
		return err
	}

	customs, err := store.ListCustomVariables(ctx, service.VariableFilter{
		Provider:    conn.Provider,
		EnabledOnly: true,
	})
	if err != nil {
		return err
	}
	builtins, err := store.ListEnabledBuiltins(ctx, conn.Provider)
	if err != nil {
		return err
	}

	if len(customs) == 0 && len(builtins) == 0 {
		slog.Info("No enabled variables for provider", "provider", conn.Provider)
		return nil
	}

	// One cached source per resolution call: variables sharing a category
	// fetch its records once. A nil source is catalog-only mode.
	var src model.Source
	if !viper.GetBool("resolve.catalog_only") {
		liveSrc, err := provider.SourceFor(conn)
		if err != nil {
			return err
		}
		src = resolve.NewCachedSource(liveSrc)
	}

	output := make(map[string]any)

	bar := progressbar.Default(int64(len(customs)+1), "resolving variables")

	for _, cv := range customs {
		resolver, err := resolve.NewResolver(cv)
		if err != nil {
			return err
		}
		if err := resolver.Resolve(ctx, src); err != nil {
			return err
		}
		for k, v := range resolver.OutputMap() {
			output[k] = v
		}
		_ = bar.Add(1)
	}

	if len(builtins) > 0 && src != nil {
		values, err := resolve.ResolveBuiltins(ctx, conn.Provider, src, builtins)
		if err != nil {
			return err
		}
		for k, v := range values {
			output[k] = v
		}
	}
	_ = bar.Add(1)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Resolved %d output values", len(output))))
	return emitJSON(output)
}
