// cmd_display.go - Tabellen- und JSON-Ausgabe von Konfigurationen
// Hauptfunktionen: showConfig, showChecks, renderTable, formatValue
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/term"

	"github.com/grolp/grolp/config"
	"github.com/grolp/grolp/envconfig"
)

// minValueWidth ist die kleinste Spaltenbreite, auf die Werte gekuerzt werden
const minValueWidth = 20

// isTerminal - Prueft ob w ein Terminal ist
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// valueWidth - Verfuegbare Breite fuer die Werte-Spalte (0 = unbegrenzt)
func valueWidth(w io.Writer, keyWidth int) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}

	return max(width-keyWidth-len("    ")-1, minValueWidth)
}

// formatValue - Formatiert einen Dictionary-Wert fuer die Tabelle
func formatValue(v any, width int) string {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case nil:
		s = "-"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			s = fmt.Sprintf("%v", v)
		} else {
			s = string(b)
		}
	}

	if width > 0 && runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "...")
	}
	return s
}

// renderTable - Schreibt eine Tabelle im Stil von "grolp env".
// Zeilen mit highlight[i] werden fett gesetzt, wenn Farben aktiv sind.
func renderTable(w io.Writer, header []string, rows [][]string, highlight []bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)

	color := !envconfig.NoColor() && isTerminal(w)
	for i, row := range rows {
		if color && i < len(highlight) && highlight[i] {
			colors := make([]tablewriter.Colors, len(row))
			for j := range colors {
				colors[j] = tablewriter.Colors{tablewriter.Bold}
			}
			table.Rich(row, colors)
			continue
		}
		table.Append(row)
	}

	table.Render()
}

// selectFields - Liefert die Eintraege einer Konfiguration, optional nur die Abweichungen
func selectFields(cfg config.Config, onlyDiff bool) (*orderedmap.OrderedMap[string, any], map[string]any) {
	fields := cfg.Fields()
	diff := cfg.Diff()
	if !onlyDiff {
		return fields, diff
	}

	out := orderedmap.New[string, any]()
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := diff[pair.Key]; ok {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out, diff
}

// showConfig - Gibt eine Konfiguration als Tabelle oder JSON aus.
// JSON behaelt die Reihenfolge der Felder.
func showConfig(w io.Writer, cfg config.Config, onlyDiff, asJSON bool) error {
	fields, diff := selectFields(cfg, onlyDiff)

	if asJSON {
		b, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	keyWidth := 0
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		keyWidth = max(keyWidth, len(pair.Key))
	}
	width := valueWidth(w, keyWidth)

	var rows [][]string
	var highlight []bool
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		_, changed := diff[pair.Key]
		rows = append(rows, []string{pair.Key, formatValue(pair.Value, width)})
		highlight = append(highlight, changed && !onlyDiff)
	}

	fmt.Fprintf(w, "  %s (%s)\n", cfg.Kind(), cfg.ModelType())
	renderTable(w, []string{"KEY", "VALUE"}, rows, highlight)
	return nil
}

// showWarnings - Schreibt Layout-Warnungen
func showWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

// checkStatus - Status-Spalte fuer "config check"
func checkStatus(r config.CheckResult) (string, string) {
	switch {
	case r.Err != nil:
		return "error", r.Err.Error()
	case len(r.Warnings) > 0:
		return "warning", strings.Join(r.Warnings, "; ")
	default:
		return "ok", fmt.Sprintf("%d visual features", r.Config.NumVisualFeatures())
	}
}

// showChecks - Gibt die Ergebnisse von "config check" als Tabelle aus
func showChecks(w io.Writer, results []config.CheckResult) {
	var rows [][]string
	var highlight []bool
	for _, r := range results {
		status, details := checkStatus(r)
		rows = append(rows, []string{r.Dir, status, details})
		highlight = append(highlight, status != "ok")
	}

	renderTable(w, []string{"DIR", "STATUS", "DETAILS"}, rows, highlight)
}
