// constants.go - Feste Dimensionen und Standardwerte der Embodied-Konfiguration
//
// Enthaelt:
// - ROI-Dimensionen eines visuellen Tokens (Features, Winkel, Koordinaten, Flaeche)
// - ALFRED Aktionsraum und Inferenz-Limits
// - Schluessel und Namen der Konfigurations-Arten
package config

// Dimensionen eines visuellen Tokens
const (
	RoiFeaturesDim    = 1024
	RoiAnglesDim      = 3
	RoiCoordinatesDim = 4
	RoiRelAreaDim     = 1

	// VisualEmbSize ist die Summe der vier ROI-Dimensionen
	VisualEmbSize = RoiFeaturesDim + RoiAnglesDim + RoiCoordinatesDim + RoiRelAreaDim
)

const (
	// AlfredActionSpace ist die Groesse des diskreten ALFRED-Aktionsvokabulars
	AlfredActionSpace = 13

	// OscarImgFeatureDim ist die Feature-Breite des externen Region-Extraktors
	OscarImgFeatureDim = 2054

	// InferenceTrajLimit begrenzt die Schritte einer Trajektorie bei der Inferenz
	InferenceTrajLimit = 200

	// NumObjectLabels ist die Groesse des Objekt-Label-Vokabulars
	NumObjectLabels = 119

	// NumViews ist die Anzahl der Kamera-Ansichten (Front + drei weitere)
	NumViews = 4

	// ObjectsPerView ist die Standard-Objektanzahl jeder Ansicht
	ObjectsPerView = 9
)

const (
	// ModelTypeBert ist der model_type beider Konfigurationen
	ModelTypeBert = "bert"

	// StateReprHidden liest den Hidden-State als Zustandsrepraesentation aus
	StateReprHidden = "hidden"

	// ConfigFileName ist der Dateiname in einem Checkpoint-Verzeichnis
	ConfigFileName = "config.json"
)

// Registrierte Konfigurations-Arten
const (
	KindEmbodied = "embodied"
	KindAlfred   = "alfred"
)

// DefaultNumObjectsPerView gibt die Standard-Objektanzahl pro Ansicht zurueck.
// Position 0 ist die Front-Ansicht, die weiteren folgen nach rechts.
func DefaultNumObjectsPerView() []int {
	return []int{ObjectsPerView, ObjectsPerView, ObjectsPerView, ObjectsPerView}
}
