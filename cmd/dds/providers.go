package main

import (
	"fmt"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/cli"

	"github.com/spf13/cobra"
)

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered data providers",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Println(cli.FormatTitle("Registered data providers"))
			for _, d := range catalog.Providers() {
				fmt.Printf("  %s%s\n",
					cli.CellStyle.Render(d.Type),
					cli.SubtleStyle.Render(fmt.Sprintf("%s, %d categories", d.Label, len(d.Categories))))
			}
			return nil
		},
	}
}
