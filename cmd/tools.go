package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaitanya2108/Google-Workspace/internal/tools/catalog"
)

func newToolsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the operation catalog as markdown",
		Long: `Print markdown documentation for every operation in the catalog.

The output is generated from the registered tool descriptors, so it stays in
sync with what the server exposes. No credentials are needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFile == "" {
				return writeCatalog(cmd.OutOrStdout())
			}
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			if err := writeCatalog(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Documentation written to %s\n", outputFile)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func writeCatalog(w io.Writer) error {
	return catalog.WriteMarkdown(w, catalog.Capabilities(nil, ""))
}
