// routes.go - HTTP-Routen des Config-Servers
// Enthaelt: Server, GenerateRoutes(), KindsHandler(), DefaultsHandler(), ResolveHandler()

package server

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/grolp/grolp/api"
	"github.com/grolp/grolp/config"
	"github.com/grolp/grolp/envconfig"
	"github.com/grolp/grolp/version"
)

// Server beantwortet Anfragen zu Konfigurations-Arten
type Server struct {
	addr net.Addr

	// layout ist das Token-Layout, gegen das aufgeloeste Configs geprueft werden
	layout config.VisualLayout
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router
func (s *Server) GenerateRoutes() (http.Handler, error) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
	}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(
		cors.New(corsConfig),
		allowedHostsMiddleware(s.addr),
		requestIDMiddleware(),
	)

	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "grolp is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "grolp is running") })
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, api.VersionResponse{Version: version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, api.VersionResponse{Version: version.Version}) })

	r.GET("/api/kinds", s.KindsHandler)
	r.GET("/api/configs/:kind", s.DefaultsHandler)
	r.POST("/api/configs/:kind", s.ResolveHandler)

	return r, nil
}

// KindsHandler listet die registrierten Arten
func (s *Server) KindsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.KindsResponse{Kinds: config.Kinds()})
}

// DefaultsHandler gibt die Standard-Konfiguration einer Art zurueck
func (s *Server) DefaultsHandler(c *gin.Context) {
	kind := c.Param("kind")

	cfg, err := config.Defaults(kind)
	if err != nil {
		writeConfigError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.ConfigResponse{Kind: kind, Config: cfg.ToMap()})
}

// ResolveHandler wendet Overrides an und meldet Layout-Inkonsistenzen
func (s *Server) ResolveHandler(c *gin.Context) {
	kind := c.Param("kind")

	var req api.ResolveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	cfg, err := config.New(kind, req.Overrides)
	if err != nil {
		writeConfigError(c, err)
		return
	}

	warnings := config.Warnings(cfg.CheckVisualLayout(s.layout))
	if len(warnings) > 0 {
		slog.Debug("resolved config has layout warnings", "request", c.GetString(headerRequestID), "kind", kind, "warnings", warnings)
	}

	c.JSON(http.StatusOK, api.ResolveResponse{
		Kind:     kind,
		Config:   cfg.ToMap(),
		Diff:     cfg.Diff(),
		Warnings: warnings,
	})
}

func writeConfigError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, config.ErrUnknownKind):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
