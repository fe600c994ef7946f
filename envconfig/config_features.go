// config_features.go - Standard-Art und Parallelitaet
package envconfig

var (
	// ConfigKind ist die Standard-Art fuer CLI-Befehle (alfred oder embodied)
	ConfigKind = StringWithDefault("GROLP_CONFIG_KIND", "alfred")

	// NoColor deaktiviert fette Hervorhebung in Tabellen
	NoColor = Bool("GROLP_NOCOLOR")
)

var (
	// CheckParallel begrenzt gleichzeitig gepruefte Checkpoint-Verzeichnisse
	// Konfigurierbar via GROLP_CHECK_PARALLEL
	CheckParallel = Uint("GROLP_CHECK_PARALLEL", 4)
)

var (
	// HFEndpoint ersetzt https://huggingface.co (Mirror oder Test-Server)
	HFEndpoint = String("HF_ENDPOINT")

	// hfToken wird nie im Klartext exportiert
	hfToken = String("HF_TOKEN")
)

// HFTokenSet meldet ob HF_TOKEN gesetzt ist
func HFTokenSet() bool {
	return hfToken() != ""
}
