// Package api implementiert den Client fuer den grolp Config-Server.
// Die Methoden von [Client] entsprechen den Routen unter /api.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"

	"github.com/grolp/grolp/envconfig"
	"github.com/grolp/grolp/version"
)

// Client kapselt den Zustand fuer Anfragen an den Config-Server.
// Neue Clients mit [ClientFromEnvironment] erstellen.
type Client struct {
	base *url.URL
	http *http.Client
}

func checkError(resp *http.Response, body []byte) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiError := StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	err := json.Unmarshal(body, &apiError)
	if err != nil {
		// Use the full body as the message if we fail to decode a response.
		apiError.ErrorMessage = string(body)
	}

	return apiError
}

// ClientFromEnvironment erstellt einen [Client] aus GROLP_HOST.
// Format der Variable:
//
//	<scheme>://<host>:<port>
//
// Ohne Variable wird http://127.0.0.1:11500 verwendet.
func ClientFromEnvironment() (*Client, error) {
	return &Client{
		base: envconfig.Host(),
		http: http.DefaultClient,
	}, nil
}

func NewClient(base *url.URL, http *http.Client) *Client {
	return &Client{
		base: base,
		http: http,
	}
}

func (c *Client) do(ctx context.Context, method, path string, reqData, respData any) error {
	var reqBody io.Reader
	if reqData != nil {
		data, err := json.Marshal(reqData)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	requestURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), reqBody)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", fmt.Sprintf("grolp/%s (%s %s) Go/%s", version.Version, runtime.GOARCH, runtime.GOOS, runtime.Version()))

	respObj, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer respObj.Body.Close()

	respBody, err := io.ReadAll(respObj.Body)
	if err != nil {
		return err
	}

	if err := checkError(respObj, respBody); err != nil {
		return err
	}

	if len(respBody) > 0 && respData != nil {
		if err := json.Unmarshal(respBody, respData); err != nil {
			return err
		}
	}
	return nil
}

// Kinds listet die registrierten Konfigurations-Arten
func (c *Client) Kinds(ctx context.Context) (*KindsResponse, error) {
	var resp KindsResponse
	if err := c.do(ctx, http.MethodGet, "/api/kinds", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Defaults gibt die Standard-Konfiguration einer Art zurueck
func (c *Client) Defaults(ctx context.Context, kind string) (*ConfigResponse, error) {
	var resp ConfigResponse
	if err := c.do(ctx, http.MethodGet, "/api/configs/"+url.PathEscape(kind), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resolve wendet Overrides auf die Standardwerte einer Art an
func (c *Client) Resolve(ctx context.Context, kind string, req *ResolveRequest) (*ResolveResponse, error) {
	var resp ResolveResponse
	if err := c.do(ctx, http.MethodPost, "/api/configs/"+url.PathEscape(kind), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Version gibt die Server-Version zurueck
func (c *Client) Version(ctx context.Context) (string, error) {
	var resp VersionResponse
	if err := c.do(ctx, http.MethodGet, "/api/version", nil, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}
