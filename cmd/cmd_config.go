// cmd_config.go - "grolp config" und Unterbefehle
// Hauptfunktionen: ShowHandler, InitHandler, CheckHandler, ResolveHandler, PullHandler, parseSet
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grolp/grolp/api"
	"github.com/grolp/grolp/config"
	"github.com/grolp/grolp/envconfig"
	"github.com/grolp/grolp/huggingface"
)

// errInvalidSet - --set ohne "="
var errInvalidSet = errors.New("invalid --set, expected key=value")

// parseSet - Zerlegt key=value. Werte werden als JSON gelesen (9, true, [1,2]),
// alles andere bleibt String.
func parseSet(s string) (string, any, error) {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("%w: %q", errInvalidSet, s)
	}

	var val any
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return key, raw, nil
	}
	return key, val, nil
}

// overridesFromFlags - Liest --overrides und legt --set darueber
func overridesFromFlags(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)

	if path, _ := cmd.Flags().GetString("overrides"); path != "" {
		m, err := config.LoadOverrides(path)
		if err != nil {
			return nil, err
		}
		maps.Copy(overrides, m)
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	for _, s := range sets {
		key, val, err := parseSet(s)
		if err != nil {
			return nil, err
		}
		overrides[key] = val
	}

	return overrides, nil
}

// kindFromFlags - --kind oder GROLP_CONFIG_KIND
func kindFromFlags(cmd *cobra.Command) string {
	if kind, _ := cmd.Flags().GetString("kind"); kind != "" {
		return kind
	}
	return envconfig.ConfigKind()
}

// buildConfig - Standardwerte oder config.json aus dir, danach die Overrides
func buildConfig(kind, dir string, overrides map[string]any) (config.Config, error) {
	if dir == "" {
		return config.New(kind, overrides)
	}

	cfg, err := config.Load(kind, dir)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return cfg, nil
	}

	merged := cfg.ToMap()
	if _, ok := overrides["num_labels"]; ok {
		// sonst gewinnen die geladenen Labels ueber num_labels
		if _, ok := overrides["id2label"]; !ok {
			delete(merged, "id2label")
			delete(merged, "label2id")
		}
	}
	maps.Copy(merged, overrides)
	return config.New(kind, merged)
}

// wantJSON - --json oder keine Terminal-Ausgabe
func wantJSON(cmd *cobra.Command) bool {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return true
	}
	return !isTerminal(cmd.OutOrStdout())
}

// ShowHandler - Zeigt eine aufgeloeste Konfiguration
func ShowHandler(cmd *cobra.Command, _ []string) error {
	overrides, err := overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	cfg, err := buildConfig(kindFromFlags(cmd), dir, overrides)
	if err != nil {
		return err
	}

	onlyDiff, _ := cmd.Flags().GetBool("diff")
	if err := showConfig(cmd.OutOrStdout(), cfg, onlyDiff, wantJSON(cmd)); err != nil {
		return err
	}

	if check, _ := cmd.Flags().GetBool("check"); check {
		showWarnings(cmd.ErrOrStderr(), config.Warnings(cfg.CheckVisualLayout(config.DefaultVisualLayout())))
	}
	return nil
}

// InitHandler - Schreibt config.json in ein Checkpoint-Verzeichnis
func InitHandler(cmd *cobra.Command, args []string) error {
	dir := envconfig.ConfigDir()
	if len(args) > 0 {
		dir = args[0]
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if force, _ := cmd.Flags().GetBool("force"); !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	overrides, err := overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.New(kindFromFlags(cmd), overrides)
	if err != nil {
		return err
	}

	if err := config.SaveDir(dir, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// CheckHandler - Laedt und prueft mehrere Checkpoint-Verzeichnisse parallel
func CheckHandler(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{envconfig.ConfigDir()}
	}

	parallel, _ := cmd.Flags().GetInt("parallel")
	if parallel <= 0 {
		parallel = int(envconfig.CheckParallel())
	}

	results, err := config.CheckDirs(cmd.Context(), kindFromFlags(cmd), config.DefaultVisualLayout(), dirs, parallel)
	if err != nil {
		return err
	}

	showChecks(cmd.OutOrStdout(), results)

	strict, _ := cmd.Flags().GetBool("strict")
	var failed int
	for _, r := range results {
		if r.Err != nil || (strict && len(r.Warnings) > 0) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d directories failed the check", failed, len(results))
	}
	return nil
}

// ResolveHandler - Laesst einen laufenden Server die Overrides aufloesen
func ResolveHandler(cmd *cobra.Command, _ []string) error {
	overrides, err := overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	resp, err := client.Resolve(cmd.Context(), kindFromFlags(cmd), &api.ResolveRequest{Overrides: overrides})
	if err != nil {
		return err
	}

	onlyDiff, _ := cmd.Flags().GetBool("diff")
	out := resp.Config
	if onlyDiff {
		out = resp.Diff
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))

	showWarnings(cmd.ErrOrStderr(), resp.Warnings)
	return nil
}

// PullHandler - Laedt config.json eines Hub-Repositories und zeigt sie an
func PullHandler(cmd *cobra.Command, args []string) error {
	revision, _ := cmd.Flags().GetString("revision")

	dir, err := huggingface.NewClient().FetchConfig(cmd.Context(), args[0], revision, config.ConfigFileName)
	if err != nil {
		return err
	}

	cfg, err := config.Load(kindFromFlags(cmd), dir)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := config.SaveDir(out, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", filepath.Join(out, config.ConfigFileName))
	}

	onlyDiff, _ := cmd.Flags().GetBool("diff")
	return showConfig(cmd.OutOrStdout(), cfg, onlyDiff, wantJSON(cmd))
}

// addOverrideFlags - Gemeinsame Flags fuer Overrides
func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", "", "Config kind (alfred or embodied)")
	cmd.Flags().StringArray("set", nil, "Override a config key (key=value, repeatable)")
	cmd.Flags().String("overrides", "", "JSON or YAML file with config overrides")
}

// newConfigCmd - Erstellt den config Command mit Unterbefehlen
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show, create and check model configurations",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show a resolved configuration",
		Args:  cobra.ExactArgs(0),
		RunE:  ShowHandler,
	}
	addOverrideFlags(showCmd)
	showCmd.Flags().String("dir", "", "Checkpoint directory containing config.json")
	showCmd.Flags().Bool("diff", false, "Only show values that differ from the defaults")
	showCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	showCmd.Flags().Bool("check", false, "Check the visual token layout and print warnings")

	initCmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write config.json into a checkpoint directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  InitHandler,
	}
	addOverrideFlags(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config.json")

	checkCmd := &cobra.Command{
		Use:   "check [DIR...]",
		Short: "Load checkpoint directories and check their visual token layout",
		RunE:  CheckHandler,
	}
	checkCmd.Flags().String("kind", "", "Config kind (alfred or embodied)")
	checkCmd.Flags().Int("parallel", 0, "Maximum directories checked at once")
	checkCmd.Flags().Bool("strict", false, "Fail on layout warnings")

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve overrides on a running grolp server",
		Args:  cobra.ExactArgs(0),
		RunE:  ResolveHandler,
	}
	addOverrideFlags(resolveCmd)
	resolveCmd.Flags().Bool("diff", false, "Only show values that differ from the defaults")

	pullCmd := &cobra.Command{
		Use:   "pull OWNER/MODEL",
		Short: "Fetch config.json of a HuggingFace checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE:  PullHandler,
	}
	pullCmd.Flags().String("kind", "", "Config kind (alfred or embodied)")
	pullCmd.Flags().String("revision", huggingface.DefaultRevision, "Branch, tag or commit")
	pullCmd.Flags().String("out", "", "Also write the config into this directory")
	pullCmd.Flags().Bool("diff", false, "Only show values that differ from the defaults")
	pullCmd.Flags().Bool("json", false, "Print JSON instead of a table")

	configCmd.AddCommand(showCmd, initCmd, checkCmd, resolveCmd, pullCmd)
	return configCmd
}
