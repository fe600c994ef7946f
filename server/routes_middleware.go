// routes_middleware.go - Schutz gegen DNS-Rebinding bei Loopback-Servern
// Enthaelt: isLocalIP(), allowedHost(), allowedHostsMiddleware(), requestIDMiddleware()

package server

import (
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// headerRequestID wird vom Client uebernommen oder pro Anfrage erzeugt
const headerRequestID = "X-Request-Id"

// isLocalIP prueft ob die IP-Adresse zu einem lokalen Interface gehoert
func isLocalIP(ip netip.Addr) bool {
	interfaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, a := range addrs {
			if prefix, err := netip.ParsePrefix(a.String()); err == nil && prefix.Addr() == ip {
				return true
			}
		}
	}

	return false
}

// allowedHost erlaubt leere Hosts, localhost, den eigenen Hostnamen und lokale TLDs
func allowedHost(host string) bool {
	host = strings.ToLower(host)

	if host == "" || host == "localhost" {
		return true
	}

	if hostname, err := os.Hostname(); err == nil && host == strings.ToLower(hostname) {
		return true
	}

	for _, tld := range []string{"localhost", "local", "internal"} {
		if strings.HasSuffix(host, "."+tld) {
			return true
		}
	}

	return false
}

// allowedHostsMiddleware greift nur, wenn der Server auf Loopback lauscht
func allowedHostsMiddleware(addr net.Addr) gin.HandlerFunc {
	return func(c *gin.Context) {
		if addr == nil {
			c.Next()
			return
		}

		if ap, err := netip.ParseAddrPort(addr.String()); err == nil && !ap.Addr().IsLoopback() {
			c.Next()
			return
		}

		host, _, err := net.SplitHostPort(c.Request.Host)
		if err != nil {
			host = c.Request.Host
		}

		if ip, err := netip.ParseAddr(host); err == nil {
			if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || isLocalIP(ip) {
				c.Next()
				return
			}
		}

		if !allowedHost(host) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware setzt X-Request-Id auf jeder Antwort
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(headerRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}
