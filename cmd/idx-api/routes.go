package main

import (
	"fmt"

	"github.com/aretw0/idx/internal/presentation/tui"
	httpAdapter "github.com/aretw0/idx/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the API routes",
	Long:  `Prints the routes documented in the embedded OpenAPI description, rendered for the terminal.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		doc, err := httpAdapter.LoadSpec(cmd.Context())
		if err != nil {
			return err
		}

		var rows []tui.RouteRow
		for _, r := range httpAdapter.Routes(doc) {
			rows = append(rows, tui.RouteRow{Method: r.Method, Path: r.Path, Summary: r.Summary})
		}
		md := tui.RoutesMarkdown(doc.Info.Title, rows)

		if plain {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		render, err := tui.NewRenderer(100)
		if err != nil {
			return fmt.Errorf("failed to init renderer: %w", err)
		}
		out, err := render(md)
		if err != nil {
			return fmt.Errorf("failed to render routes: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().Bool("plain", false, "Print raw markdown")
}
