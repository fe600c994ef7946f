// types_text.go - Basis-Textkonfiguration (BERT) mit gemeinsamen Pretrained-Feldern
// Enthaelt: TextConfig, DefaultTextConfig(), NewTextConfig()
package config

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
)

// TextConfig ist die Konfiguration des Transformer-Text-Encoders.
// Die Werte gelten nach der Erstellung als unveraenderlich.
type TextConfig struct {
	Architectures       []string `json:"architectures"`
	TorchDtype          string   `json:"torch_dtype"`
	TransformersVersion string   `json:"transformers_version"`

	// Architektur
	VocabSize                 int      `json:"vocab_size"`
	HiddenSize                int      `json:"hidden_size"`
	NumHiddenLayers           int      `json:"num_hidden_layers"`
	NumAttentionHeads         int      `json:"num_attention_heads"`
	IntermediateSize          int      `json:"intermediate_size"`
	HiddenAct                 string   `json:"hidden_act"`
	HiddenDropoutProb         float64  `json:"hidden_dropout_prob"`
	AttentionProbsDropoutProb float64  `json:"attention_probs_dropout_prob"`
	MaxPositionEmbeddings     int      `json:"max_position_embeddings"`
	TypeVocabSize             int      `json:"type_vocab_size"`
	InitializerRange          float64  `json:"initializer_range"`
	LayerNormEps              float64  `json:"layer_norm_eps"`
	PositionEmbeddingType     string   `json:"position_embedding_type"`
	UseCache                  bool     `json:"use_cache"`
	ClassifierDropout         *float64 `json:"classifier_dropout"`

	// Spezial-Tokens
	PadTokenID *int `json:"pad_token_id"`
	BosTokenID *int `json:"bos_token_id"`
	EosTokenID *int `json:"eos_token_id"`

	OutputHiddenStates bool `json:"output_hidden_states"`
	OutputAttentions   bool `json:"output_attentions"`
	ReturnDict         bool `json:"return_dict"`
	IsDecoder          bool `json:"is_decoder"`
	AddCrossAttention  bool `json:"add_cross_attention"`
	TieWordEmbeddings  bool `json:"tie_word_embeddings"`

	// Klassifikations-Labels, Schluessel von ID2Label sind Dezimalzahlen
	ID2Label map[string]string `json:"id2label"`
	Label2ID map[string]int    `json:"label2id"`

	// Extra enthaelt unbekannte Schluessel, die unveraendert durchgereicht werden
	Extra map[string]any `json:"-"`
}

// DefaultTextConfig gibt die BERT-Standardwerte zurueck
func DefaultTextConfig() TextConfig {
	t := TextConfig{
		VocabSize:                 30522,
		HiddenSize:                768,
		NumHiddenLayers:           12,
		NumAttentionHeads:         12,
		IntermediateSize:          3072,
		HiddenAct:                 "gelu",
		HiddenDropoutProb:         0.1,
		AttentionProbsDropoutProb: 0.1,
		MaxPositionEmbeddings:     512,
		TypeVocabSize:             2,
		InitializerRange:          0.02,
		LayerNormEps:              1e-12,
		PositionEmbeddingType:     "absolute",
		UseCache:                  true,
		PadTokenID:                intPtr(0),
		ReturnDict:                true,
		TieWordEmbeddings:         true,
	}
	t.setNumLabels(2)
	return t
}

// NewTextConfig erstellt eine Textkonfiguration aus Standardwerten und Overrides
func NewTextConfig(overrides map[string]any) (TextConfig, error) {
	t := DefaultTextConfig()
	if err := configure(reflect.ValueOf(&t).Elem(), &t, overrides); err != nil {
		return TextConfig{}, err
	}
	return t, nil
}

// ModelType gibt den festen model_type zurueck
func (TextConfig) ModelType() string {
	return ModelTypeBert
}

// NumLabels gibt die Anzahl der Klassifikations-Labels zurueck
func (t TextConfig) NumLabels() int {
	return len(t.ID2Label)
}

func (t *TextConfig) setNumLabels(n int) {
	t.ID2Label = make(map[string]string, n)
	t.Label2ID = make(map[string]int, n)
	for i := range n {
		name := "LABEL_" + strconv.Itoa(i)
		t.ID2Label[strconv.Itoa(i)] = name
		t.Label2ID[name] = i
	}
}

// configure setzt alle Felder von root (einem Struct, das text einbettet)
// und behandelt anschliessend Labels und Passthrough-Schluessel.
func configure(root reflect.Value, text *TextConfig, overrides map[string]any) error {
	extra, err := applyOverrides(root, jsonFields(root.Type(), true), overrides)
	if err != nil {
		return err
	}
	text.Extra = extra

	return text.normalizeLabels(overrides)
}

func (t *TextConfig) normalizeLabels(overrides map[string]any) error {
	_, hasID2Label := overrides["id2label"]
	_, hasLabel2ID := overrides["label2id"]

	for k := range t.ID2Label {
		if _, err := strconv.Atoi(k); err != nil {
			return &Error{Op: "set", Key: "id2label", Err: fmt.Errorf("%w: %q", ErrInvalidLabelID, k)}
		}
	}

	if raw := overrides[keyNumLabels]; raw != nil {
		v, err := convertValue(raw, reflect.TypeFor[int]())
		if err != nil {
			return &Error{Op: "set", Key: keyNumLabels, Err: err}
		}

		n := int(v.Int())
		switch {
		case n < 0:
			return &Error{Op: "set", Key: keyNumLabels, Err: fmt.Errorf("%w: must not be negative", ErrInvalidType)}
		case !hasID2Label:
			t.setNumLabels(n)
			return nil
		case len(t.ID2Label) != n:
			slog.Warn("num_labels does not match id2label, keeping id2label", "num_labels", n, "id2label", len(t.ID2Label))
		}
	}

	if hasID2Label && !hasLabel2ID {
		t.Label2ID = make(map[string]int, len(t.ID2Label))
		for k, name := range t.ID2Label {
			id, _ := strconv.Atoi(k)
			t.Label2ID[name] = id
		}
	}

	return nil
}

func intPtr(n int) *int {
	return &n
}
