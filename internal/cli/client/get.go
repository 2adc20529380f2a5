package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/cloo-solutions/docsum/internal/cli"
	"github.com/spf13/cobra"
)

// Summary represents a stored summary from the API.
type Summary struct {
	Text string `json:"text"`
	Name string `json:"name"`
	Date int64  `json:"date"`
}

// GetCmd creates the get command.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get <summary_id>",
		Short:   "Get a summary by ID",
		Long:    "Retrieves a stored summary by its ID and displays it.",
		Aliases: []string{"view"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runGet(cmd.OutOrStdout(), api, args[0], outputJSON)
		},
	}

	return cli.Annotate(cmd, []string{envAPIURL}, nil)
}

func runGet(w io.Writer, api *APIClient, id string, outputJSON bool) error {
	var summary Summary
	if err := api.Get("/summarization/"+url.PathEscape(id), &summary); err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintf(w, "Name: %s\n", summary.Name)
	fmt.Fprintf(w, "Created: %s\n", time.UnixMilli(summary.Date).UTC().Format(time.RFC3339))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Summary ---")
	fmt.Fprintln(w, summary.Text)
	return nil
}
