// types_alfred.go - Aktionsraum-Konfiguration fuer ALFRED-Agenten
// Enthaelt: AlfredConfig, DefaultAlfredConfig(), NewAlfredConfig()
package config

import (
	"maps"
	"reflect"
)

// AlfredConfig erweitert EmbodiedConfig um die Aktionsvorhersage
type AlfredConfig struct {
	EmbodiedConfig

	NumActions        int     `json:"num_actions"`
	ActionLossWeight  float64 `json:"action_loss_weight"`
	ObjInteractWeight float64 `json:"obj_interact_weight"`

	UsePMLoss            bool `json:"use_pm_loss"`
	UseStartInstrLoss    bool `json:"use_start_instr_loss"`
	UseNavReceptacleLoss bool `json:"use_nav_receptacle_loss"`
}

// DefaultAlfredConfig gibt die Standard-Konfiguration zurueck
func DefaultAlfredConfig() AlfredConfig {
	return AlfredConfig{
		EmbodiedConfig:    DefaultEmbodiedConfig(),
		NumActions:        AlfredActionSpace,
		ActionLossWeight:  1.0,
		ObjInteractWeight: 1.0,
	}
}

// NewAlfredConfig erstellt zuerst den Embodied-Teil aus den Overrides und
// setzt danach die eigenen Aktionsraum-Felder.
func NewAlfredConfig(overrides map[string]any) (AlfredConfig, error) {
	own := jsonFields(reflect.TypeFor[AlfredConfig](), false)

	base := maps.Clone(overrides)
	mine := make(map[string]any)
	for _, f := range own {
		if v, ok := overrides[f.key]; ok {
			mine[f.key] = v
			delete(base, f.key)
		}
	}

	e, err := NewEmbodiedConfig(base)
	if err != nil {
		return AlfredConfig{}, err
	}

	c := DefaultAlfredConfig()
	c.EmbodiedConfig = e
	if _, err := applyOverrides(reflect.ValueOf(&c).Elem(), own, mine); err != nil {
		return AlfredConfig{}, err
	}

	return c, nil
}

// Kind gibt die registrierte Art zurueck
func (AlfredConfig) Kind() string {
	return KindAlfred
}
