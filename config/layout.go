// layout.go - Visuelles Token-Layout und optionale Konsistenzpruefung
//
// visual_emb_size ist ein eigenstaendiges Feld. Ob es zum Layout passt,
// prueft nur der Aufrufer ueber CheckVisualLayout.
package config

import (
	"errors"
	"fmt"
)

// VisualLayout beschreibt die vier Teil-Dimensionen eines visuellen Tokens
type VisualLayout struct {
	Features    int `json:"features"`
	Angles      int `json:"angles"`
	Coordinates int `json:"coordinates"`
	RelArea     int `json:"rel_area"`
}

// DefaultVisualLayout gibt das Layout des Region-Extraktors zurueck (1024/3/4/1)
func DefaultVisualLayout() VisualLayout {
	return VisualLayout{
		Features:    RoiFeaturesDim,
		Angles:      RoiAnglesDim,
		Coordinates: RoiCoordinatesDim,
		RelArea:     RoiRelAreaDim,
	}
}

// Size ist die Gesamtbreite eines Tokens
func (l VisualLayout) Size() int {
	return l.Features + l.Angles + l.Coordinates + l.RelArea
}

// CheckVisualLayout prueft visual_emb_size gegen das Layout und die Anzahl
// der Ansichten. Mehrere Probleme werden mit errors.Join verbunden.
func (c EmbodiedConfig) CheckVisualLayout(l VisualLayout) error {
	var errs []error
	if c.VisualEmbSize != l.Size() {
		errs = append(errs, fmt.Errorf("%w: visual_emb_size=%d, layout=%d", ErrVisualEmbMismatch, c.VisualEmbSize, l.Size()))
	}
	if len(c.NumObjectsPerView) != NumViews {
		errs = append(errs, fmt.Errorf("%w: got %d, want %d", ErrObjectsPerViewArity, len(c.NumObjectsPerView), NumViews))
	}
	return errors.Join(errs...)
}

// Warnings zerlegt das Ergebnis von CheckVisualLayout in einzelne Meldungen
func Warnings(err error) []string {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}

	return []string{err.Error()}
}
