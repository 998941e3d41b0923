// Package cli — new.go implements the "ribbonx new" command.
//
// The new command wires a fresh custom UI part into a document, seeds it
// with a starter template, and saves. It refuses to overwrite an existing
// part — that is what import is for.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
	"github.com/clbispo/office-ribbonx-editor/internal/office"
)

// newFlags holds the flag values for the new command.
type newFlags struct {
	part       string // --part: which part kind to create
	target     string // --target: save to this path instead of in place
	noPreserve bool   // --no-preserve-attributes: don't reapply file attributes
}

// NewNewCommand creates the "new" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewNewCommand() *cobra.Command {
	flags := &newFlags{}

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Add a starter custom UI part to an Office document",
		Long: `Add a custom UI part seeded with a starter template to an Office
document and save it.

Fails if the document already has a part of the requested kind; use
import to replace existing content.

Examples:
  ribbonx new report.xlsm
  ribbonx new --part qat report.xlsm`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args[0], flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().StringVar(&flags.part, "part", "", "Part kind: qat, ribbon12, ribbon14 (default: ribbon14)")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Save to this path instead of in place")
	cmd.Flags().BoolVar(&flags.noPreserve, "no-preserve-attributes", false, "Don't reapply the target file's original attributes")

	return cmd
}

// runNew is the main logic function for the new command.
func runNew(path string, flags *newFlags) error {
	settings, err := loadSettings(path)
	if err != nil {
		return err
	}
	kind, err := resolvePartKind(flags.part, settings)
	if err != nil {
		return err
	}
	preserve := resolvePreserveAttributes(flags.noPreserve, settings)

	tmpl, err := office.TemplateFor(kind)
	if err != nil {
		return err
	}

	doc, err := office.OpenDocument(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	if doc.RetrieveCustomPart(kind) != nil {
		return model.NewError(model.KindInvalidArgument,
			fmt.Sprintf("%s already has a %s part (use import to replace its content)", path, kind))
	}

	if err := doc.SaveCustomPart(kind, tmpl, true); err != nil {
		return err
	}

	VerboseLog("Saving document (target=%q, preserveAttributes=%v)", flags.target, preserve)
	if err := doc.Save(flags.target, preserve); err != nil {
		return err
	}

	target := flags.target
	if target == "" {
		target = path
	}
	printNewResult(kind, target)
	return nil
}

// printNewResult outputs the new command result in text or JSON format.
func printNewResult(kind model.PartKind, target string) {
	if IsJSONOutput() {
		result := map[string]any{
			"part":   kind.String(),
			"target": target,
			"action": "created",
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Printf("Added starter %s part to %s\n", kind, target)
}
