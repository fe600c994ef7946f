// config_utils.go - Utility-Funktionen und Export fuer Konfiguration
//
// Dieses Modul enthaelt:
// - BoolWithDefault/Bool: Boolean-Getter mit Default-Wert
// - String/StringWithDefault: String-Getter
// - Uint: Integer-Getter mit Default-Wert
// - EnvVar: Struktur fuer Environment-Variablen-Info
// - AsMap: Gibt alle Konfigurationen als Map zurueck
// - Values: Gibt alle Konfigurationswerte als String-Map zurueck
package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// =============================================================================
// Getter
// =============================================================================

// BoolWithDefault gibt eine Funktion zurueck, die einen Bool mit Default-Wert liest
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool gibt eine Funktion zurueck, die einen Bool liest (Default: false)
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// String gibt eine Funktion zurueck, die einen String liest
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// StringWithDefault gibt eine Funktion zurueck, die einen String mit Default-Wert liest
func StringWithDefault(k, defaultValue string) func() string {
	return func() string {
		if s := Var(k); s != "" {
			return s
		}
		return defaultValue
	}
}

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// =============================================================================
// Export
// =============================================================================

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"GROLP_DEBUG":          {"GROLP_DEBUG", LogLevel(), "Show additional debug information (e.g. GROLP_DEBUG=1)"},
		"GROLP_HOST":           {"GROLP_HOST", Host(), "IP Address for the grolp config server (default 127.0.0.1:11500)"},
		"GROLP_ORIGINS":        {"GROLP_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
		"GROLP_CONFIG_DIR":     {"GROLP_CONFIG_DIR", ConfigDir(), "Checkpoint directory holding config.json (default \".\")"},
		"GROLP_CONFIG_KIND":    {"GROLP_CONFIG_KIND", ConfigKind(), "Config kind used when --kind is not given (default \"alfred\")"},
		"GROLP_CHECK_PARALLEL": {"GROLP_CHECK_PARALLEL", CheckParallel(), "Maximum number of directories checked in parallel (default 4)"},
		"GROLP_NOCOLOR":        {"GROLP_NOCOLOR", NoColor(), "Disable bold highlighting of changed values in tables"},
		"HF_ENDPOINT":          {"HF_ENDPOINT", HFEndpoint(), "HuggingFace Hub URL used by config pull (default https://huggingface.co)"},
		"HF_TOKEN":             {"HF_TOKEN", HFTokenSet(), "HuggingFace access token for gated repositories (value is not shown)"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
