// cmd_serve.go - Server, Env und Version
// Hauptfunktionen: RunServer, versionHandler, EnvHandler
package cmd

import (
	"errors"
	"fmt"
	"maps"
	"net"
	"net/http"
	"slices"

	"github.com/spf13/cobra"

	"github.com/grolp/grolp/api"
	"github.com/grolp/grolp/envconfig"
	"github.com/grolp/grolp/server"
	"github.com/grolp/grolp/version"
)

// RunServer - Startet den Config-Server
func RunServer(_ *cobra.Command, _ []string) error {
	ln, err := net.Listen("tcp", envconfig.Host().Host)
	if err != nil {
		return err
	}

	err = server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// versionHandler - Vergleicht Client- und Server-Version
func versionHandler(cmd *cobra.Command, _ []string) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return
	}

	serverVersion, err := client.Version(cmd.Context())
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Warning: could not connect to a running grolp server")
	}

	if serverVersion != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "grolp version is %s\n", serverVersion)
	}

	if serverVersion != version.Version {
		fmt.Fprintf(cmd.OutOrStdout(), "Warning: client version is %s\n", version.Version)
	}
}

// EnvHandler - Zeigt alle GROLP_* Variablen mit aktuellem Wert
func EnvHandler(cmd *cobra.Command, _ []string) error {
	vars := envconfig.AsMap()

	var data [][]string
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		v := vars[k]
		data = append(data, []string{v.Name, fmt.Sprintf("%v", v.Value), v.Description})
	}

	renderTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "DESCRIPTION"}, data, nil)
	return nil
}

// newServeCmd - Erstellt den serve Command
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the config server",
		Args:    cobra.ExactArgs(0),
		RunE:    RunServer,
	}
}

// newEnvCmd - Erstellt den env Command
func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show environment variables",
		Args:  cobra.ExactArgs(0),
		RunE:  EnvHandler,
	}
}
