// dict.go - Dictionary- und JSON-Darstellung der Konfigurationen
//
// Das Dictionary ist flach: alle getypten Felder per JSON-Schluessel, danach
// die abgeleiteten Werte und zuletzt die Passthrough-Schluessel aus Extra.
// Beim Dekodieren laeuft alles ueber denselben Override-Pfad wie New*Config.
package config

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// entry ist ein abgeleiteter Schluessel/Wert
type entry struct {
	key string
	val any
}

// Config ist das gemeinsame Interface beider Konfigurations-Arten
type Config interface {
	Kind() string
	ModelType() string
	NumVisualFeatures() int
	NumObjectsInFront() int
	CheckVisualLayout(VisualLayout) error

	// Fields gibt alle Eintraege in Deklarationsreihenfolge zurueck
	Fields() *orderedmap.OrderedMap[string, any]
	// ToMap gibt das flache Dictionary zurueck
	ToMap() map[string]any
	// Diff gibt nur die Eintraege zurueck, die vom Standard abweichen
	Diff() map[string]any
}

func orderedFields(v reflect.Value, extra map[string]any, computed []entry) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	for _, f := range jsonFields(v.Type(), true) {
		om.Set(f.key, exportValue(v.FieldByIndex(f.index)))
	}
	for _, e := range computed {
		om.Set(e.key, e.val)
	}
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if _, ok := om.Get(k); !ok {
			om.Set(k, extra[k])
		}
	}
	return om
}

func toMap(om *orderedmap.OrderedMap[string, any]) map[string]any {
	m := make(map[string]any, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

func diff(cur, def map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range cur {
		if dv, ok := def[k]; !ok || !reflect.DeepEqual(v, dv) {
			out[k] = v
		}
	}
	return out
}

// Fields gibt alle Eintraege in Deklarationsreihenfolge zurueck
func (c EmbodiedConfig) Fields() *orderedmap.OrderedMap[string, any] {
	return orderedFields(reflect.ValueOf(c), c.Extra, c.computed())
}

// ToMap gibt das flache Dictionary zurueck
func (c EmbodiedConfig) ToMap() map[string]any {
	return toMap(c.Fields())
}

// Diff gibt die Abweichungen von DefaultEmbodiedConfig zurueck
func (c EmbodiedConfig) Diff() map[string]any {
	return diff(c.ToMap(), DefaultEmbodiedConfig().ToMap())
}

// MarshalJSON schreibt das flache Dictionary
func (c EmbodiedConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

// UnmarshalJSON baut die Konfiguration aus einem flachen Dictionary neu auf
func (c *EmbodiedConfig) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	cfg, err := NewEmbodiedConfig(m)
	if err != nil {
		return err
	}

	*c = cfg
	return nil
}

// Fields gibt alle Eintraege in Deklarationsreihenfolge zurueck
func (c AlfredConfig) Fields() *orderedmap.OrderedMap[string, any] {
	return orderedFields(reflect.ValueOf(c), c.Extra, c.computed())
}

// ToMap gibt das flache Dictionary zurueck
func (c AlfredConfig) ToMap() map[string]any {
	return toMap(c.Fields())
}

// Diff gibt die Abweichungen von DefaultAlfredConfig zurueck
func (c AlfredConfig) Diff() map[string]any {
	return diff(c.ToMap(), DefaultAlfredConfig().ToMap())
}

// MarshalJSON schreibt das flache Dictionary
func (c AlfredConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

// UnmarshalJSON baut die Konfiguration aus einem flachen Dictionary neu auf
func (c *AlfredConfig) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	cfg, err := NewAlfredConfig(m)
	if err != nil {
		return err
	}

	*c = cfg
	return nil
}
