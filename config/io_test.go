// io_test.go - Tests fuer SaveDir, Load und LoadOverrides
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "checkpoint")

	want, err := NewAlfredConfig(map[string]any{
		"num_actions":          9,
		"num_objects_per_view": []int{6, 6, 6, 6},
		"architectures":        []string{"AlfredModel"},
		"custom_flag":          "on",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := SaveDir(dir, want); err != nil {
		t.Fatalf("SaveDir: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, []byte("}\n")) {
		t.Error("config.json sollte mit Zeilenumbruch enden")
	}

	t.Run("LoadAlfred", func(t *testing.T) {
		got, err := LoadAlfred(dir)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("Load nach Art", func(t *testing.T) {
		got, err := Load(KindAlfred, dir)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(Config(want), got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("LoadEmbodied behaelt Aktionsfelder als Passthrough", func(t *testing.T) {
		got, err := LoadEmbodied(dir)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want.EmbodiedConfig.NumObjectsPerView, got.NumObjectsPerView); diff != "" {
			t.Errorf("NumObjectsPerView (-want +got):\n%s", diff)
		}
		if got.Extra["num_actions"] != float64(9) {
			t.Errorf("Extra[num_actions] = %v, erwartet 9", got.Extra["num_actions"])
		}
	})
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadAlfred(t.TempDir())

	var cfgErr *Error
	if !errors.As(err, &cfgErr) || cfgErr.Op != "load" {
		t.Fatalf("Erwartete load-Fehler, bekam %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Erwartete fs.ErrNotExist, bekam %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"num_actions":`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadEmbodied(dir); err == nil {
		t.Error("Erwartete Fehler")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name, file, data string
		expectErr        bool
	}{
		{"YAML", "overrides.yaml", "num_objects_per_view: [3, 3, 3, 3]\nuse_pm_loss: true\naction_loss_weight: 0.5\nid2label:\n  0: stop\n  1: go\n", false},
		{"YML", "overrides.yml", "num_actions: 7\n", false},
		{"JSON", "overrides.json", `{"num_actions": 7, "use_pm_loss": true}`, false},
		{"Invalides YAML", "broken.yaml", "num_actions: [1,\n", true},
		{"Invalides JSON", "broken.json", `{"num_actions"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}

			m, err := LoadOverrides(path)
			if tt.expectErr {
				if err == nil {
					t.Error("Erwartete Fehler")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unerwarteter Fehler: %v", err)
			}

			if _, err := NewAlfredConfig(m); err != nil {
				t.Errorf("Overrides nicht anwendbar: %v", err)
			}
		})
	}

	t.Run("YAML Werte", func(t *testing.T) {
		m, err := LoadOverrides(filepath.Join(dir, "overrides.yaml"))
		if err != nil {
			t.Fatal(err)
		}

		c, err := NewAlfredConfig(m)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff([]int{3, 3, 3, 3}, c.NumObjectsPerView); diff != "" {
			t.Errorf("NumObjectsPerView (-want +got):\n%s", diff)
		}
		if !c.UsePMLoss || c.ActionLossWeight != 0.5 {
			t.Errorf("UsePMLoss/ActionLossWeight = %v/%v", c.UsePMLoss, c.ActionLossWeight)
		}
		if diff := cmp.Diff(map[string]string{"0": "stop", "1": "go"}, c.ID2Label); diff != "" {
			t.Errorf("ID2Label (-want +got):\n%s", diff)
		}
	})

	t.Run("Nicht vorhanden", func(t *testing.T) {
		_, err := LoadOverrides(filepath.Join(dir, "missing.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Erwartete fs.ErrNotExist, bekam %v", err)
		}
	})
}
