// client.go - Minimaler HuggingFace Hub Client fuer Checkpoint-Konfigurationen
//
// Dieses Modul enthaelt:
// - Client mit Optionen (Token, Endpoint, HTTP-Client)
// - FetchConfig: laedt config.json eines Repositories in den Hub-Cache
// - Error: Fehler mit Operation und Repository
package huggingface

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grolp/grolp/envconfig"
	"github.com/grolp/grolp/version"
)

// Konstanten fuer den HuggingFace Hub
const (
	DefaultHubURL        = "https://huggingface.co"
	DefaultRevision      = "main"
	DefaultClientTimeout = 60 * time.Second
	EnvHFToken           = "HF_TOKEN"
)

// Fehler-Definitionen
var (
	ErrRepoNotFound    = errors.New("repository not found")
	ErrUnauthorized    = errors.New("authentication failed")
	ErrRateLimited     = errors.New("rate limited")
	ErrInvalidRepoID   = errors.New("invalid repository id")
	ErrInvalidResponse = errors.New("invalid server response")
)

// Error repraesentiert einen Fehler bei Hub-Operationen
type Error struct {
	Op   string // Operation (fetch, cache)
	Repo string // Betroffenes Repository
	Err  error  // Urspruenglicher Fehler
}

func (e *Error) Error() string {
	if e.Repo != "" {
		return "huggingface " + e.Op + " [" + e.Repo + "]: " + e.Err.Error()
	}
	return "huggingface " + e.Op + ": " + e.Err.Error()
}

// Unwrap ermoeglicht errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// Client ist der HuggingFace Hub Client
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cacheDir   string
}

// ClientOption konfiguriert den Client
type ClientOption func(*Client)

// WithToken setzt den HuggingFace API Token
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithBaseURL setzt eine eigene Hub-URL (z.B. Mirror oder Test-Server)
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient setzt einen eigenen HTTP Client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// WithCacheDir setzt das Cache-Verzeichnis statt GetCacheDir()
func WithCacheDir(dir string) ClientOption {
	return func(c *Client) { c.cacheDir = dir }
}

// NewClient erstellt einen Client aus HF_TOKEN/HF_ENDPOINT und den Optionen
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultClientTimeout},
		baseURL:    DefaultHubURL,
		token:      envconfig.Var(EnvHFToken),
		cacheDir:   GetCacheDir(),
	}
	if endpoint := envconfig.HFEndpoint(); endpoint != "" {
		c.baseURL = strings.TrimSuffix(endpoint, "/")
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchConfig laedt filename (meist config.json) aus repo in den Cache und
// gibt das Snapshot-Verzeichnis zurueck. Bereits gecachte Dateien werden
// nicht erneut geladen.
func (c *Client) FetchConfig(ctx context.Context, repo, revision, filename string) (string, error) {
	if err := validateRepoID(repo); err != nil {
		return "", &Error{Op: "fetch", Repo: repo, Err: err}
	}
	if revision == "" {
		revision = DefaultRevision
	}

	dir := snapshotDir(c.cacheDir, repo, revision)
	target := filepath.Join(dir, filename)
	if _, err := os.Stat(target); err == nil {
		slog.Debug("using cached file", "repo", repo, "revision", revision, "path", target)
		return dir, nil
	}

	url := fmt.Sprintf("%s/%s/resolve/%s/%s", c.baseURL, repo, revision, filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{Op: "fetch", Repo: repo, Err: err}
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Op: "fetch", Repo: repo, Err: err}
	}
	defer resp.Body.Close()

	if err := handleResponseError(resp); err != nil {
		return "", &Error{Op: "fetch", Repo: repo, Err: err}
	}

	if err := writeAtomic(target, resp.Body); err != nil {
		return "", &Error{Op: "cache", Repo: repo, Err: err}
	}

	slog.Info("downloaded file", "repo", repo, "revision", revision, "file", filename)
	return dir, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "grolp/"+version.Version)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func handleResponseError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrRepoNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d - %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

func validateRepoID(repo string) error {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: expected 'owner/model', got %q", ErrInvalidRepoID, repo)
	}
	return nil
}
