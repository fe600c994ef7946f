// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/containerd/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grolp/grolp/envconfig"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cobra.EnableCommandSorting = false

	if runtime.GOOS == "windows" && term.IsTerminal(int(os.Stdout.Fd())) {
		console.ConsoleFromFile(os.Stdin) //nolint:errcheck
	}

	rootCmd := &cobra.Command{
		Use:           "grolp",
		Short:         "Embodied vision-language model configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	configCmd := newConfigCmd()
	serveCmd := newServeCmd()
	envCmd := newEnvCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	for _, sub := range configCmd.Commands() {
		switch sub.Name() {
		case "resolve":
			appendEnvDocs(sub, []envconfig.EnvVar{envVars["GROLP_HOST"], envVars["GROLP_CONFIG_KIND"]})
		case "pull":
			appendEnvDocs(sub, []envconfig.EnvVar{envVars["GROLP_CONFIG_KIND"], envVars["HF_TOKEN"], envVars["HF_ENDPOINT"]})
		case "check":
			appendEnvDocs(sub, []envconfig.EnvVar{
				envVars["GROLP_CONFIG_KIND"],
				envVars["GROLP_CONFIG_DIR"],
				envVars["GROLP_CHECK_PARALLEL"],
			})
		default:
			appendEnvDocs(sub, []envconfig.EnvVar{
				envVars["GROLP_CONFIG_KIND"],
				envVars["GROLP_CONFIG_DIR"],
				envVars["GROLP_NOCOLOR"],
			})
		}
	}

	appendEnvDocs(serveCmd, []envconfig.EnvVar{
		envVars["GROLP_DEBUG"],
		envVars["GROLP_HOST"],
		envVars["GROLP_ORIGINS"],
	})

	rootCmd.AddCommand(
		serveCmd,
		configCmd,
		envCmd,
	)

	return rootCmd
}
