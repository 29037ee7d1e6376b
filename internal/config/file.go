package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// readConfigFile reads name and merges <name>.local.<ext> over it when
// present. Both files may use JSON5 syntax. It returns an error wrapping
// fs.ErrNotExist when neither file exists.
func readConfigFile(name string) (fileConfig, error) {
	var out fileConfig
	found := false

	data, err := os.ReadFile(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return out, err
	}
	if len(data) > 0 {
		if err := json5.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		found = true
	}

	ext := filepath.Ext(name)
	localName := strings.TrimSuffix(name, ext) + ".local" + ext
	localData, err := os.ReadFile(localName)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return out, err
	}
	if len(localData) > 0 {
		var override fileConfig
		if err := json5.Unmarshal(localData, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", localName, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("Merging config with local overrides", "local", localName)
		found = true
	}

	if !found {
		return out, fmt.Errorf("no config file at %s: %w", name, fs.ErrNotExist)
	}
	return out, nil
}
