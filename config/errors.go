// errors.go - Fehler-Definitionen fuer das Config-Paket
package config

import "errors"

var (
	// ErrUnknownKind wird zurueckgegeben wenn keine Konfigurations-Art registriert ist
	ErrUnknownKind = errors.New("unknown config kind")

	// ErrInvalidType wird zurueckgegeben wenn ein Override den falschen Typ hat
	ErrInvalidType = errors.New("invalid value type")

	// ErrInvalidLabelID wird zurueckgegeben wenn ein id2label-Schluessel keine Zahl ist
	ErrInvalidLabelID = errors.New("id2label keys must be integers")

	// ErrVisualEmbMismatch meldet ein visual_emb_size, das nicht zum Token-Layout passt
	ErrVisualEmbMismatch = errors.New("visual_emb_size does not match visual token layout")

	// ErrObjectsPerViewArity meldet num_objects_per_view ohne genau vier Eintraege
	ErrObjectsPerViewArity = errors.New("num_objects_per_view must have one entry per view")
)

// Error repraesentiert einen Fehler beim Erstellen, Laden oder Speichern einer Konfiguration
type Error struct {
	Op  string // Operation (set, load, save, new)
	Key string // Betroffener Schluessel oder Pfad
	Err error  // Urspruenglicher Fehler
}

// Error implementiert das error Interface
func (e *Error) Error() string {
	if e.Key != "" {
		return "config " + e.Op + " [" + e.Key + "]: " + e.Err.Error()
	}
	return "config " + e.Op + ": " + e.Err.Error()
}

// Unwrap ermoeglicht errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}
