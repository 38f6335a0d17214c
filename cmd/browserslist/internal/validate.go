package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-browserslist/data"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the embedded browser, usage and runtime data",
	Long: `Validate checks the embedded datasets for consistency: every released
version is listed, usage entries name known browsers, and the Electron and
Node.js tables are well formed.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := data.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d browsers, %d usage entries, %d electron releases, %d node releases\n",
		len(data.BrowserNames()), len(data.Usage()), len(data.Electron()), len(data.NodeReleases()))
	return nil
}
