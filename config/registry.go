// registry.go - Registry der Konfigurations-Arten
// Hauptfunktionen: Register, New, Kinds, Defaults
package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// kinds speichert registrierte Konstruktoren
var kinds = make(map[string]func(map[string]any) (Config, error))

// Register registriert einen Konstruktor fuer eine Konfigurations-Art
func Register(kind string, f func(map[string]any) (Config, error)) {
	if _, ok := kinds[kind]; ok {
		panic("config: kind already registered")
	}

	kinds[kind] = f
}

func init() {
	Register(KindEmbodied, func(overrides map[string]any) (Config, error) {
		c, err := NewEmbodiedConfig(overrides)
		if err != nil {
			return nil, err
		}
		return c, nil
	})

	Register(KindAlfred, func(overrides map[string]any) (Config, error) {
		c, err := NewAlfredConfig(overrides)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// New erstellt eine Konfiguration der angegebenen Art
func New(kind string, overrides map[string]any) (Config, error) {
	f, ok := kinds[kind]
	if !ok {
		return nil, &Error{Op: "new", Key: kind, Err: fmt.Errorf("%w, expected one of: %s", ErrUnknownKind, strings.Join(Kinds(), ", "))}
	}

	return f(overrides)
}

// Defaults gibt die Standard-Konfiguration einer Art zurueck
func Defaults(kind string) (Config, error) {
	return New(kind, nil)
}

// Kinds gibt alle registrierten Arten sortiert zurueck
func Kinds() []string {
	return slices.Sorted(maps.Keys(kinds))
}
