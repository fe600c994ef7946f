// io.go - Laden und Speichern von config.json und Override-Dateien
//
// Dieses Modul enthaelt:
// - SaveDir: Schreibt config.json in ein Checkpoint-Verzeichnis
// - Load/LoadEmbodied/LoadAlfred: Lesen config.json wieder ein
// - LoadOverrides: Liest Keyword-Overrides aus JSON oder YAML
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveDir schreibt die Konfiguration als dir/config.json
func SaveDir(dir string, c Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Op: "save", Key: dir, Err: err}
	}

	data, err := json.MarshalIndent(c.ToMap(), "", "  ")
	if err != nil {
		return &Error{Op: "save", Key: dir, Err: err}
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &Error{Op: "save", Key: path, Err: err}
	}

	return nil
}

// readDir liest dir/config.json als flaches Dictionary
func readDir(dir string) (map[string]any, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "load", Key: path, Err: err}
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &Error{Op: "load", Key: path, Err: err}
	}

	return m, nil
}

// Load liest dir/config.json als Konfiguration der angegebenen Art
func Load(kind, dir string) (Config, error) {
	m, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	return New(kind, m)
}

// LoadEmbodied liest dir/config.json als EmbodiedConfig
func LoadEmbodied(dir string) (EmbodiedConfig, error) {
	m, err := readDir(dir)
	if err != nil {
		return EmbodiedConfig{}, err
	}

	return NewEmbodiedConfig(m)
}

// LoadAlfred liest dir/config.json als AlfredConfig
func LoadAlfred(dir string) (AlfredConfig, error) {
	m, err := readDir(dir)
	if err != nil {
		return AlfredConfig{}, err
	}

	return NewAlfredConfig(m)
}

// LoadOverrides liest eine Override-Datei. Endungen .yaml/.yml werden als YAML
// gelesen, alles andere als JSON.
func LoadOverrides(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "load", Key: path, Err: err}
	}

	m := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, &Error{Op: "load", Key: path, Err: err}
	}

	return m, nil
}
