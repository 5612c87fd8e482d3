package main

import (
	"fmt"
	"time"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/cli"
	"github.com/datadonation/dds/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func connectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Manage provider connections",
	}

	cmd.AddCommand(connectionsAddCmd())
	cmd.AddCommand(connectionsListCmd())
	cmd.AddCommand(connectionsDeleteCmd())

	return cmd
}

func connectionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <provider>",
		Short: "Store a provider connection from an OAuth token",
		Args:  cobra.ExactArgs(1),
		RunE:  runConnectionsAdd,
	}

	cmd.Flags().String("access-token", "", "OAuth access token")
	cmd.Flags().String("refresh-token", "", "OAuth refresh token")
	cmd.Flags().String("label", "", "Human-readable connection label")
	cmd.Flags().Duration("expires-in", 0, "Access token lifetime from now (e.g. 8h)")
	_ = cmd.MarkFlagRequired("access-token")

	_ = viper.BindPFlag("connections.access_token", cmd.Flags().Lookup("access-token"))
	_ = viper.BindPFlag("connections.refresh_token", cmd.Flags().Lookup("refresh-token"))
	_ = viper.BindPFlag("connections.label", cmd.Flags().Lookup("label"))
	_ = viper.BindPFlag("connections.expires_in", cmd.Flags().Lookup("expires-in"))

	return cmd
}

func runConnectionsAdd(cmd *cobra.Command, args []string) error {
	providerType := args[0]
	if _, err := catalog.Provider(providerType); err != nil {
		return err
	}

	conn := &model.Connection{
		Provider:     providerType,
		Label:        viper.GetString("connections.label"),
		AccessToken:  viper.GetString("connections.access_token"),
		RefreshToken: viper.GetString("connections.refresh_token"),
	}
	if d := viper.GetDuration("connections.expires_in"); d > 0 {
		conn.TokenExpiry = time.Now().Add(d)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveConnection(cmd.Context(), conn); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %s connection %s", providerType, conn.ID)))
	return nil
}

func connectionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored connections",
		RunE:  runConnectionsList,
	}

	cmd.Flags().StringP("provider", "p", "", "Filter by provider")
	_ = viper.BindPFlag("connections.provider", cmd.Flags().Lookup("provider"))

	return cmd
}

func runConnectionsList(cmd *cobra.Command, _ []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	connections, err := store.ListConnections(cmd.Context(), viper.GetString("connections.provider"))
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Provider connections"))
	if len(connections) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  none"))
		return nil
	}
	for _, conn := range connections {
		label := conn.Label
		if label == "" {
			label = "(unlabeled)"
		}
		fmt.Printf("  %s%s\n",
			cli.CellStyle.Render(conn.ID),
			cli.SubtleStyle.Render(fmt.Sprintf("%s %s", conn.Provider, label)))
	}
	return nil
}

func connectionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <connection-id>",
		Short: "Delete a stored connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteConnection(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted connection %s", args[0])))
			return nil
		},
	}
}
