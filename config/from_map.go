// from_map.go - Anwenden von Keyword-Overrides auf Konfigurations-Structs
//
// Overrides werden ueber die JSON-Tags der Felder aufgeloest. Unbekannte
// Schluessel landen unveraendert in TextConfig.Extra, berechnete Schluessel
// werden ignoriert.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/grolp/grolp/logutil"
)

// computedKeys werden beim Serialisieren geschrieben, aber nie aus Overrides uebernommen
var computedKeys = map[string]bool{
	"model_type":            true,
	"num_visual_features":   true,
	"num_objects_in_front":  true,
	"oscar_img_feature_dim": true,
	"num_object_labels":     true,
}

// keyNumLabels ist ein virtueller Schluessel, der id2label/label2id erzeugt
const keyNumLabels = "num_labels"

// field beschreibt ein per JSON-Tag adressierbares Struct-Feld
type field struct {
	key   string
	index []int
	typ   reflect.Type
}

// jsonFields gibt die Felder von t in Deklarationsreihenfolge zurueck.
// Mit promoted=false nur die direkt in t deklarierten Felder.
func jsonFields(t reflect.Type, promoted bool) []field {
	var fields []field
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		if !promoted && len(sf.Index) > 1 {
			continue
		}

		key, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if key == "" || key == "-" {
			continue
		}

		fields = append(fields, field{key: key, index: sf.Index, typ: sf.Type})
	}
	return fields
}

// applyOverrides setzt die Felder von dst aus overrides.
// Gibt die nicht zuordenbaren Schluessel zurueck (nil wenn keine).
func applyOverrides(dst reflect.Value, fields []field, overrides map[string]any) (map[string]any, error) {
	byKey := make(map[string]field, len(fields))
	for _, f := range fields {
		byKey[f.key] = f
	}

	var extra map[string]any
	// sortiert, damit bei mehreren Fehlern immer derselbe gemeldet wird
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		val := overrides[key]

		if computedKeys[key] {
			slog.Debug("ignoring computed config key", "key", key)
			continue
		}
		if key == keyNumLabels {
			continue
		}

		f, ok := byKey[key]
		if !ok {
			if extra == nil {
				extra = make(map[string]any)
			}
			slog.Debug("passing through unknown config key", "key", key)
			extra[key] = val
			continue
		}

		if val == nil && !nullable(f.typ) {
			continue
		}

		v, err := convertValue(val, f.typ)
		if err != nil {
			return nil, &Error{Op: "set", Key: key, Err: err}
		}
		dst.FieldByIndex(f.index).Set(v)
		logutil.Trace("set config key", "key", key, "value", val)
	}

	return extra, nil
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		return true
	}
	return false
}

// convertValue konvertiert einen dekodierten Wert (JSON, YAML oder Go) in typ.
// Slices und Maps werden immer neu angelegt.
func convertValue(val any, typ reflect.Type) (reflect.Value, error) {
	if val == nil {
		if nullable(typ) {
			return reflect.Zero(typ), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: null is not %s", ErrInvalidType, typ)
	}

	rv := reflect.ValueOf(val)
	switch typ.Kind() {
	case reflect.Pointer:
		elem, err := convertValue(val, typ.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(typ.Elem())
		p.Elem().Set(elem)
		return p, nil
	case reflect.Int:
		n, ok := toInt(rv)
		if !ok {
			return reflect.Value{}, invalidType(val, "integer")
		}
		return reflect.ValueOf(n).Convert(typ), nil
	case reflect.Float64:
		f, ok := toFloat(rv)
		if !ok {
			return reflect.Value{}, invalidType(val, "float")
		}
		return reflect.ValueOf(f).Convert(typ), nil
	case reflect.Bool:
		if rv.Kind() != reflect.Bool {
			return reflect.Value{}, invalidType(val, "boolean")
		}
		return reflect.ValueOf(rv.Bool()).Convert(typ), nil
	case reflect.String:
		if rv.Kind() != reflect.String {
			return reflect.Value{}, invalidType(val, "string")
		}
		return reflect.ValueOf(rv.String()).Convert(typ), nil
	case reflect.Slice:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return reflect.Value{}, invalidType(val, "array")
		}
		out := reflect.MakeSlice(typ, rv.Len(), rv.Len())
		for i := range rv.Len() {
			e, err := convertValue(rv.Index(i).Interface(), typ.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			out.Index(i).Set(e)
		}
		return out, nil
	case reflect.Map:
		if rv.Kind() != reflect.Map {
			return reflect.Value{}, invalidType(val, "object")
		}
		out := reflect.MakeMapWithSize(typ, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, ok := mapKey(iter.Key())
			if !ok {
				return reflect.Value{}, invalidType(iter.Key().Interface(), "object key")
			}
			e, err := convertValue(iter.Value().Interface(), typ.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(typ.Key()), e)
		}
		return out, nil
	default:
		return reflect.Value{}, fmt.Errorf("unknown type loading config params: %v", typ)
	}
}

func invalidType(val any, want string) error {
	return fmt.Errorf("%w: must be of type %s, got %T", ErrInvalidType, want, val)
}

func toInt(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		// JSON dekodiert Zahlen als float64
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case reflect.String:
		if num, ok := rv.Interface().(json.Number); ok {
			n, err := num.Int64()
			return n, err == nil
		}
	}
	return 0, false
}

func toFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		if num, ok := rv.Interface().(json.Number); ok {
			f, err := num.Float64()
			return f, err == nil
		}
	}
	return 0, false
}

// mapKey akzeptiert String- und Integer-Schluessel (YAML dekodiert 0: als int)
func mapKey(k reflect.Value) (string, bool) {
	if k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), true
	}
	return "", false
}

// exportValue kopiert einen Feldwert fuer die Dictionary-Darstellung.
// Pointer werden dereferenziert, Slices und Maps kopiert.
func exportValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return exportValue(v.Elem())
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)
		return out.Interface()
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	}
	return v.Interface()
}
