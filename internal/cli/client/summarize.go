package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloo-solutions/docsum/internal/cli"
	"github.com/spf13/cobra"
)

// SummarizeResponse is returned by the summarize endpoints.
type SummarizeResponse struct {
	ID string `json:"id"`
}

// SummarizeCmd creates the summarize command.
func SummarizeCmd() *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "summarize <file.pdf|file.pptx>",
		Short: "Upload a document and print the summary ID",
		Long: `Uploads a PDF or PowerPoint file and waits for the server to summarize it.
The returned ID can be passed to 'docsum get'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			var onProgress ProgressFunc
			if showProgress {
				onProgress = stderrProgress(cmd.ErrOrStderr())
			}
			return runSummarize(cmd.OutOrStdout(), api, args[0], outputJSON, onProgress)
		},
	}

	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show upload progress on stderr")

	return cli.Annotate(cmd, []string{envAPIURL}, []string{"pdf", "pptx"})
}

// uploadRoute returns the endpoint and form field for a document path.
// Anything that is not a .pptx goes to the PDF endpoint, which rejects it.
func uploadRoute(path string) (string, string) {
	if strings.EqualFold(filepath.Ext(path), ".pptx") {
		return "/summarize/pptx", "pptx_file"
	}
	return "/summarize", "pdf_file"
}

func runSummarize(w io.Writer, api *APIClient, path string, outputJSON bool, onProgress ProgressFunc) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	endpoint, field := uploadRoute(path)

	var resp SummarizeResponse
	if err := api.UploadFileWithProgress(http.MethodPost, endpoint, field, path, &resp, onProgress); err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintln(w, resp.ID)
	return nil
}

func stderrProgress(w io.Writer) ProgressFunc {
	return func(current, total int64) {
		if total <= 0 {
			return
		}
		fmt.Fprintf(w, "\ruploading %3d%%", current*100/total)
		if current >= total {
			fmt.Fprintln(w)
		}
	}
}
