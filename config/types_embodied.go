// types_embodied.go - Embodied Vision-Language Konfiguration
//
// EmbodiedConfig erweitert die Textkonfiguration um die visuelle Modalitaet:
// Token-Layout, Objektanzahl pro Ansicht, Hilfs-Losses und die Methode,
// mit der der Hidden-State als Agenten-Zustand ausgelesen wird.
package config

import (
	"reflect"
)

// EmbodiedConfig ist die Konfiguration des multimodalen Embodied-Transformers.
// NumVisualFeatures und NumObjectsInFront werden immer aus NumObjectsPerView
// abgeleitet; die Dimensionen werden bei der Erstellung nicht geprueft.
type EmbodiedConfig struct {
	TextConfig

	// NumObjectsPerView enthaelt die Objektanzahl pro Kamera-Ansicht, Front zuerst
	NumObjectsPerView []int `json:"num_objects_per_view"`

	// VisualEmbSize ist die Gesamtbreite eines visuellen Tokens
	VisualEmbSize int `json:"visual_emb_size"`

	// VisualPosSize ist die Breite des Orientierungs-Teilvektors
	VisualPosSize int `json:"visual_pos_size"`

	// Hilfs-Losses
	UseLMLoss  bool `json:"use_lm_loss"`
	UseVMLoss  bool `json:"use_vm_loss"`
	UseITMLoss bool `json:"use_itm_loss"`

	// StateReprMethod bestimmt, wie der Agenten-Zustand gelesen wird (z.B. "hidden")
	StateReprMethod string `json:"state_repr_method"`
}

// DefaultEmbodiedConfig gibt die Standard-Konfiguration zurueck
func DefaultEmbodiedConfig() EmbodiedConfig {
	return EmbodiedConfig{
		TextConfig:        DefaultTextConfig(),
		NumObjectsPerView: DefaultNumObjectsPerView(),
		VisualEmbSize:     VisualEmbSize,
		VisualPosSize:     RoiAnglesDim,
		StateReprMethod:   StateReprHidden,
	}
}

// NewEmbodiedConfig erstellt eine Konfiguration aus Standardwerten und Overrides.
// Unbekannte Schluessel landen in Extra, Typfehler werden zurueckgegeben.
func NewEmbodiedConfig(overrides map[string]any) (EmbodiedConfig, error) {
	c := DefaultEmbodiedConfig()
	if err := configure(reflect.ValueOf(&c).Elem(), &c.TextConfig, overrides); err != nil {
		return EmbodiedConfig{}, err
	}
	return c, nil
}

// Kind gibt die registrierte Art zurueck
func (EmbodiedConfig) Kind() string {
	return KindEmbodied
}

// NumVisualFeatures ist die Summe aller Objekte ueber alle Ansichten
func (c EmbodiedConfig) NumVisualFeatures() int {
	var n int
	for _, v := range c.NumObjectsPerView {
		n += v
	}
	return n
}

// NumObjectsInFront ist die Objektanzahl der Front-Ansicht (0 ohne Ansichten)
func (c EmbodiedConfig) NumObjectsInFront() int {
	if len(c.NumObjectsPerView) == 0 {
		return 0
	}
	return c.NumObjectsPerView[0]
}

// OscarImgFeatureDim ist fest und kann nicht ueberschrieben werden
func (EmbodiedConfig) OscarImgFeatureDim() int {
	return OscarImgFeatureDim
}

// NumObjectLabels ist fest und kann nicht ueberschrieben werden
func (EmbodiedConfig) NumObjectLabels() int {
	return NumObjectLabels
}

// computed gibt die abgeleiteten Eintraege des Dictionarys zurueck
func (c EmbodiedConfig) computed() []entry {
	return []entry{
		{"model_type", c.ModelType()},
		{"num_visual_features", c.NumVisualFeatures()},
		{"num_objects_in_front", c.NumObjectsInFront()},
		{"oscar_img_feature_dim", c.OscarImgFeatureDim()},
		{"num_object_labels", c.NumObjectLabels()},
	}
}
