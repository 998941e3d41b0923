// Package cli — remove.go implements the "ribbonx remove" command.
//
// The remove command deletes one custom UI part (relationship and part)
// from a document and saves. By default it prompts for confirmation; the
// --force flag skips the prompt.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
	"github.com/clbispo/office-ribbonx-editor/internal/office"
)

// removeFlags holds the flag values for the remove command.
type removeFlags struct {
	part string // --part: which part kind to remove

	// force skips the interactive confirmation prompt when true.
	force bool

	noPreserve bool // --no-preserve-attributes: don't reapply file attributes
}

// NewRemoveCommand creates the "remove" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRemoveCommand() *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "remove <file>",
		Short: "Remove a custom UI part from an Office document",
		Long: `Remove one custom UI part (its relationship and, if nothing else
references it, the part itself) from an Office document and save.

Unless --force is specified, the command prompts for confirmation.

Examples:
  ribbonx remove report.xlsm
  ribbonx remove --part qat --force report.xlsm`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args[0], flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().StringVar(&flags.part, "part", "", "Part kind: qat, ribbon12, ribbon14 (default: ribbon14)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Remove without confirmation")
	cmd.Flags().BoolVar(&flags.noPreserve, "no-preserve-attributes", false, "Don't reapply the target file's original attributes")

	return cmd
}

// runRemove is the main logic function for the remove command.
func runRemove(path string, flags *removeFlags) error {
	settings, err := loadSettings(path)
	if err != nil {
		return err
	}
	kind, err := resolvePartKind(flags.part, settings)
	if err != nil {
		return err
	}
	preserve := resolvePreserveAttributes(flags.noPreserve, settings)

	doc, err := office.OpenDocument(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	if doc.RetrieveCustomPart(kind) == nil {
		return model.NewError(model.KindPartNotFound,
			fmt.Sprintf("%s has no %s part", path, kind))
	}

	if !flags.force {
		confirmed, err := promptConfirmation(path, kind)
		if err != nil {
			return model.WrapError(model.KindIO, "failed to read user input", err)
		}
		if !confirmed {
			return model.NewError(model.KindCancelled, "operation cancelled by user")
		}
	}

	if err := doc.RemoveCustomPart(kind); err != nil {
		return err
	}

	VerboseLog("Saving document (preserveAttributes=%v)", preserve)
	if err := doc.Save("", preserve); err != nil {
		return err
	}

	printRemoveResult(kind, path)
	return nil
}

// promptConfirmation asks the user to confirm the remove operation.
// It reads a single line from stdin and checks for "y" or "yes".
// Returns true if the user confirmed, false otherwise.
func promptConfirmation(path string, kind model.PartKind) (bool, error) {
	fmt.Printf("About to remove the %s part from %s.\n", kind, path)
	fmt.Print("Continue? [y/N] ")

	// bufio.Scanner handles different line endings across platforms
	// (LF on Unix, CRLF on Windows).
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}

	// If stdin is closed or an error occurred, treat it as "no".
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}

// printRemoveResult outputs the remove command result in text or JSON format.
func printRemoveResult(kind model.PartKind, path string) {
	if IsJSONOutput() {
		result := map[string]any{
			"part":   kind.String(),
			"file":   path,
			"action": "removed",
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Printf("Removed %s part from %s\n", kind, path)
}
