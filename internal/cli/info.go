// Package cli — info.go implements the "ribbonx info" command.
//
// The info command opens a document read-only (edits are never committed),
// reports its application family and whether it carries ribbon
// customization, and lists the tracked custom UI parts.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clbispo/office-ribbonx-editor/internal/office"
)

// NewInfoCommand creates the "info" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show custom UI information for an Office document",
		Long: `Show the application family, custom UI status, and tracked custom UI
parts of an Office Open XML document.

Examples:
  ribbonx info report.xlsm
  ribbonx info --json presentation.pptm`,

		// Exactly one positional argument (document path) is required.
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

// runInfo opens the document, collects the report, and prints it.
func runInfo(path string) error {
	doc, err := office.OpenDocument(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	VerboseLog("Staged %s to %s", path, doc.StagingPath())
	printInfoResult(doc)
	return nil
}

// printInfoResult outputs the info report in text or JSON format.
func printInfoResult(doc *office.Document) {
	if IsJSONOutput() {
		printInfoResultJSON(doc)
	} else {
		printInfoResultText(doc)
	}
}

// printInfoResultJSON outputs the info report as structured JSON.
func printInfoResultJSON(doc *office.Document) {
	type partJSON struct {
		Kind           string `json:"kind"`
		Path           string `json:"path"`
		RelationshipID string `json:"relationshipId"`
		Size           int    `json:"size"`
	}

	type resultJSON struct {
		File        string     `json:"file"`
		FileType    string     `json:"fileType"`
		HasCustomUI bool       `json:"hasCustomUi"`
		Parts       []partJSON `json:"parts"`
	}

	result := resultJSON{
		File:        doc.OriginalPath(),
		FileType:    doc.FileType().String(),
		HasCustomUI: doc.HasCustomUI(),
		Parts:       []partJSON{},
	}

	for _, p := range doc.Parts() {
		content, err := p.Content()
		if err != nil {
			continue
		}
		result.Parts = append(result.Parts, partJSON{
			Kind:           p.Kind().String(),
			Path:           p.URI(),
			RelationshipID: p.RelationshipID(),
			Size:           len(content),
		})
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printInfoResultText outputs the info report as human-readable text.
func printInfoResultText(doc *office.Document) {
	fmt.Printf("%s\n", doc.OriginalPath())
	fmt.Printf("  File type:     %s\n", doc.FileType())
	fmt.Printf("  Has custom UI: %v\n", doc.HasCustomUI())

	parts := doc.Parts()
	if len(parts) == 0 {
		fmt.Println("  Parts:         none")
		return
	}

	fmt.Println("  Parts:")
	for _, p := range parts {
		size := 0
		if content, err := p.Content(); err == nil {
			size = len(content)
		}
		fmt.Printf("    %-10s %s  (%s, %d bytes)\n", p.Kind(), p.URI(), p.RelationshipID(), size)
	}
}
