// Package cli — settings.go loads the optional .ribbonx.json settings file.
//
// The settings file supplies per-project defaults so repeated invocations
// don't need the same flags every time. It lives next to the document being
// edited (or wherever --settings points) and allows JSONC — JSON with
// comments — the same way devcontainer-style tool configs do.
package cli

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
)

// settingsFileName is the default settings file looked up next to the
// target document.
const settingsFileName = ".ribbonx.json"

// Settings holds the per-project defaults the CLI reads from .ribbonx.json.
// All fields are optional; zero values mean "no preference".
type Settings struct {
	// PreserveAttributes controls whether saves reapply the target file's
	// original attributes. Nil means the built-in default (true).
	PreserveAttributes *bool `json:"preserveAttributes,omitempty"`

	// DefaultPart is the part kind commands operate on when --part is not
	// given. Must parse as a valid part kind.
	DefaultPart string `json:"defaultPart,omitempty"`
}

// loadSettings resolves and parses the settings file for the given
// document. Resolution order: --settings flag, then .ribbonx.json in the
// document's directory. A missing file yields empty settings, not an error.
func loadSettings(docPath string) (*Settings, error) {
	path := settingsPath
	if path == "" {
		path = filepath.Join(filepath.Dir(docPath), settingsFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && settingsPath == "" {
			return &Settings{}, nil
		}
		return nil, model.WrapError(model.KindIO, "failed to read settings file "+path, err)
	}
	VerboseLog("Loaded settings from %s", path)

	// Strip JSONC comments and trailing commas before handing the bytes
	// to the standard JSON decoder.
	var s Settings
	if err := json.Unmarshal(jsonc.ToJSON(data), &s); err != nil {
		return nil, model.WrapError(model.KindInvalidArgument, "failed to parse settings file "+path, err)
	}

	if s.DefaultPart != "" {
		if _, err := model.ParsePartKind(s.DefaultPart); err != nil {
			return nil, model.WrapError(model.KindInvalidArgument, "invalid defaultPart in settings file "+path, err)
		}
	}
	return &s, nil
}

// resolvePartKind determines the part kind a command operates on:
// the --part flag wins, then the settings file's defaultPart, then
// ribbon14 (the format every current Office version reads).
func resolvePartKind(flagValue string, settings *Settings) (model.PartKind, error) {
	switch {
	case flagValue != "":
		kind, err := model.ParsePartKind(flagValue)
		if err != nil {
			return "", model.WrapError(model.KindInvalidArgument, "invalid --part value", err)
		}
		return kind, nil
	case settings.DefaultPart != "":
		// Validated during loadSettings.
		kind, _ := model.ParsePartKind(settings.DefaultPart)
		return kind, nil
	default:
		return model.PartRibbon14, nil
	}
}

// resolvePreserveAttributes determines whether a save should reapply the
// target's original attributes: the --no-preserve-attributes flag wins,
// then the settings file, then true.
func resolvePreserveAttributes(noPreserveFlag bool, settings *Settings) bool {
	if noPreserveFlag {
		return false
	}
	if settings.PreserveAttributes != nil {
		return *settings.PreserveAttributes
	}
	return true
}
