// types.go - Request- und Response-Typen der Config-API
// Enthaelt: StatusError, KindsResponse, ConfigResponse, ResolveRequest, ResolveResponse
package api

import (
	"fmt"
)

// StatusError ist ein Fehler mit HTTP-Statuscode und Meldung
type StatusError struct {
	StatusCode   int
	Status       string
	ErrorMessage string `json:"error"`
}

func (e StatusError) Error() string {
	switch {
	case e.Status != "" && e.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", e.Status, e.ErrorMessage)
	case e.Status != "":
		return e.Status
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		// this should not happen
		return "something went wrong, please see the grolp server logs for details"
	}
}

// KindsResponse ist die Antwort von [Client.Kinds]
type KindsResponse struct {
	Kinds []string `json:"kinds"`
}

// ConfigResponse ist die Antwort von [Client.Defaults]
type ConfigResponse struct {
	Kind   string         `json:"kind"`
	Config map[string]any `json:"config"`
}

// ResolveRequest beschreibt Keyword-Overrides fuer eine Konfigurations-Art
type ResolveRequest struct {
	Overrides map[string]any `json:"overrides,omitempty"`
}

// ResolveResponse ist die Antwort von [Client.Resolve]
type ResolveResponse struct {
	Kind   string         `json:"kind"`
	Config map[string]any `json:"config"`

	// Diff enthaelt nur die Abweichungen vom Standard
	Diff map[string]any `json:"diff"`

	// Warnings meldet Inkonsistenzen im visuellen Token-Layout
	Warnings []string `json:"warnings,omitempty"`
}

// VersionResponse ist die Antwort von [Client.Version]
type VersionResponse struct {
	Version string `json:"version"`
}
