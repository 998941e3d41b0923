// Package cli — export.go implements the "ribbonx export" command.
//
// The export command reads the content of one custom UI part and writes it
// to stdout or, with --output, to a file. The document is never modified.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
	"github.com/clbispo/office-ribbonx-editor/internal/office"
)

// exportFlags holds the flag values for the export command.
type exportFlags struct {
	part   string // --part: which part kind to export
	output string // --output: destination file (default: stdout)
}

// NewExportCommand creates the "export" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a custom UI part's XML content",
		Long: `Export the XML content of one custom UI part.

The part defaults to ribbon14; use --part to select another kind
(qat, ribbon12, ribbon14). Output goes to stdout unless --output is given.

Examples:
  ribbonx export report.xlsm
  ribbonx export --part ribbon12 report.xlsm
  ribbonx export --output customUI14.xml report.xlsm`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().StringVar(&flags.part, "part", "", "Part kind: qat, ribbon12, ribbon14 (default: ribbon14)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write content to this file instead of stdout")

	return cmd
}

// runExport opens the document, locates the requested part, and writes
// its content out.
func runExport(path string, flags *exportFlags) error {
	settings, err := loadSettings(path)
	if err != nil {
		return err
	}
	kind, err := resolvePartKind(flags.part, settings)
	if err != nil {
		return err
	}

	doc, err := office.OpenDocument(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	part := doc.RetrieveCustomPart(kind)
	if part == nil {
		return model.NewError(model.KindPartNotFound,
			fmt.Sprintf("%s has no %s part", path, kind))
	}

	content, err := part.Content()
	if err != nil {
		return err
	}

	if flags.output == "" {
		fmt.Print(content)
		return nil
	}

	if err := os.WriteFile(flags.output, []byte(content), 0o644); err != nil {
		return model.WrapError(model.KindIO, "failed to write "+flags.output, err)
	}
	VerboseLog("Wrote %d bytes to %s", len(content), flags.output)
	if !IsJSONOutput() {
		fmt.Printf("Exported %s part of %s to %s\n", kind, path, flags.output)
	}
	return nil
}
