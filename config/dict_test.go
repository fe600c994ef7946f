// dict_test.go - Tests fuer Dictionary, Diff und JSON-Round-Trip
package config

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJSONRoundTrip(t *testing.T) {
	overrides := map[string]any{
		"num_objects_per_view":    []any{float64(2), float64(3), float64(4), float64(5)},
		"visual_emb_size":         float64(2054),
		"use_lm_loss":             true,
		"use_nav_receptacle_loss": true,
		"num_actions":             float64(12),
		"action_loss_weight":      0.25,
		"classifier_dropout":      0.3,
		"architectures":           []any{"AlfredForActionPrediction"},
		"eos_token_id":            float64(102),
		"id2label":                map[string]any{"0": "stop", "1": "go", "2": "turn"},
		"gradient_checkpointing":  false,
		"task_specific_params":    map[string]any{"alfred": map[string]any{"max_steps": float64(200)}},
	}

	t.Run("alfred", func(t *testing.T) {
		want, err := NewAlfredConfig(overrides)
		if err != nil {
			t.Fatal(err)
		}

		data, err := json.Marshal(want)
		if err != nil {
			t.Fatal(err)
		}

		var got AlfredConfig
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Round-Trip (-want +got):\n%s", diff)
		}
	})

	t.Run("embodied", func(t *testing.T) {
		want, err := NewEmbodiedConfig(overrides)
		if err != nil {
			t.Fatal(err)
		}

		data, err := json.Marshal(want)
		if err != nil {
			t.Fatal(err)
		}

		var got EmbodiedConfig
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Round-Trip (-want +got):\n%s", diff)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		data, err := json.Marshal(DefaultAlfredConfig())
		if err != nil {
			t.Fatal(err)
		}

		var got AlfredConfig
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(DefaultAlfredConfig(), got); diff != "" {
			t.Errorf("Round-Trip (-want +got):\n%s", diff)
		}
	})
}

func TestUnmarshalInvalid(t *testing.T) {
	var c AlfredConfig
	if err := json.Unmarshal([]byte(`{"num_actions": "many"}`), &c); err == nil {
		t.Error("Erwartete Fehler")
	}
	if err := json.Unmarshal([]byte(`{"num_actions": `), &c); err == nil {
		t.Error("Erwartete Fehler bei kaputtem JSON")
	}
}

func TestToMap(t *testing.T) {
	m := DefaultAlfredConfig().ToMap()

	want := map[string]any{
		"model_type":            "bert",
		"num_visual_features":   36,
		"num_objects_in_front":  9,
		"oscar_img_feature_dim": 2054,
		"num_object_labels":     119,
		"num_objects_per_view":  []int{9, 9, 9, 9},
		"visual_emb_size":       1032,
		"num_actions":           13,
		"action_loss_weight":    1.0,
		"pad_token_id":          0,
		"classifier_dropout":    nil,
		"state_repr_method":     "hidden",
	}
	for k, v := range want {
		if diff := cmp.Diff(v, m[k]); diff != "" {
			t.Errorf("%s (-want +got):\n%s", k, diff)
		}
	}

	if _, ok := m["Extra"]; ok {
		t.Error("Extra darf nicht als Schluessel erscheinen")
	}
}

func TestExtraDoesNotShadowTypedFields(t *testing.T) {
	c := DefaultEmbodiedConfig()
	c.Extra = map[string]any{"hidden_size": "shadow", "note": "kept"}

	m := c.ToMap()
	if m["hidden_size"] != 768 {
		t.Errorf("hidden_size = %v, erwartet 768", m["hidden_size"])
	}
	if m["note"] != "kept" {
		t.Errorf("note = %v, erwartet kept", m["note"])
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		want      map[string]any
	}{
		{"Standard", nil, map[string]any{}},
		{"Aktionen", map[string]any{"num_actions": 5}, map[string]any{"num_actions": 5}},
		{
			"Ansichten mit abgeleiteten Werten",
			map[string]any{"num_objects_per_view": []int{1, 1, 1, 1}},
			map[string]any{
				"num_objects_per_view": []int{1, 1, 1, 1},
				"num_visual_features":  4,
				"num_objects_in_front": 1,
			},
		},
		{"Passthrough", map[string]any{"foo": "bar"}, map[string]any{"foo": "bar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewAlfredConfig(tt.overrides)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.want, c.Diff()); diff != "" {
				t.Errorf("Diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldsOrder(t *testing.T) {
	c, err := NewAlfredConfig(map[string]any{"zeta": 1, "alpha": 2})
	if err != nil {
		t.Fatal(err)
	}

	var keys []string
	for pair := c.Fields().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	if keys[0] != "architectures" {
		t.Errorf("erster Schluessel = %q, erwartet architectures", keys[0])
	}
	if got := keys[len(keys)-2:]; got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("Passthrough-Schluessel = %v, erwartet [alpha zeta] am Ende", got)
	}

	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	if !(index["hidden_size"] < index["num_objects_per_view"] && index["num_objects_per_view"] < index["num_actions"]) {
		t.Errorf("Basis-Felder sollten vor abgeleiteten Feldern stehen: %v", keys)
	}
	if index["num_actions"] > index["num_visual_features"] {
		t.Errorf("Berechnete Werte sollten nach den getypten Feldern stehen: %v", keys)
	}
}
