// config.go - Haupt-Konfigurationsfunktionen fuer grolp
//
// Dieses Modul enthaelt:
// - Host: Gibt Scheme und Host des Config-Servers zurueck (GROLP_HOST)
// - AllowedOrigins: Gibt erlaubte Origins zurueck (GROLP_ORIGINS)
// - ConfigDir: Gibt das Standard-Checkpoint-Verzeichnis zurueck (GROLP_CONFIG_DIR)
// - LogLevel: Gibt Log-Level zurueck (GROLP_DEBUG)
//
// Weitere Konfigurationen sind ausgelagert:
// - config_features.go: Standard-Art und Parallelitaet
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DefaultPort ist der Standard-Port des Config-Servers
const DefaultPort = "11500"

// Host gibt Scheme und Host zurueck
// Konfigurierbar via GROLP_HOST
// Default: http://127.0.0.1:11500
func Host() *url.URL {
	defaultPort := DefaultPort

	s := strings.TrimSpace(Var("GROLP_HOST"))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins gibt erlaubte Origins zurueck
// Konfigurierbar via GROLP_ORIGINS (komma-separiert)
// Enthaelt Standard-Origins fuer localhost
func AllowedOrigins() (origins []string) {
	if s := Var("GROLP_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			fmt.Sprintf("http://%s", origin),
			fmt.Sprintf("https://%s", origin),
			fmt.Sprintf("http://%s", net.JoinHostPort(origin, "*")),
			fmt.Sprintf("https://%s", net.JoinHostPort(origin, "*")),
		)
	}

	return origins
}

// ConfigDir gibt das Standard-Checkpoint-Verzeichnis zurueck
// Konfigurierbar via GROLP_CONFIG_DIR
// Default: aktuelles Verzeichnis
func ConfigDir() string {
	if s := Var("GROLP_CONFIG_DIR"); s != "" {
		return s
	}

	return "."
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via GROLP_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("GROLP_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
