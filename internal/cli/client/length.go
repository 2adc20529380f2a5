package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cloo-solutions/docsum/internal/cli"
	"github.com/spf13/cobra"
)

// LengthResponse is returned by the pdf-length endpoint.
type LengthResponse struct {
	Length int `json:"length"`
}

// LengthCmd creates the length command.
func LengthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "length <file.pdf>",
		Short: "Print the character count of a PDF's extracted text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runLength(cmd.OutOrStdout(), api, args[0], outputJSON)
		},
	}

	return cli.Annotate(cmd, []string{envAPIURL}, []string{"pdf"})
}

func runLength(w io.Writer, api *APIClient, path string, outputJSON bool) error {
	var resp LengthResponse
	if err := api.UploadFile(http.MethodGet, "/pdf-length", "pdf_file", path, &resp); err != nil {
		return fmt.Errorf("failed to get length: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintln(w, resp.Length)
	return nil
}
