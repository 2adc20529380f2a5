package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/docsum/internal/cli"
	"github.com/cloo-solutions/docsum/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "docsum",
		Short: "Docsum CLI - summarize PDF and PowerPoint documents",
		Long: `Docsum CLI uploads documents to a docsum server and retrieves their summaries.

Environment variables:
  DOCSUM_API_URL   API base URL (default: http://localhost:3000)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.SummarizeCmd())
	rootCmd.AddCommand(client.GetCmd())
	rootCmd.AddCommand(client.LengthCmd())
	rootCmd.AddCommand(client.ConfigCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
