package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	base, err := url.Parse(ts.URL)
	require.NoError(t, err)
	return NewClient(base, ts.Client())
}

func TestClientFromEnvironment(t *testing.T) {
	t.Setenv("GROLP_HOST", "10.0.0.1:1234")

	c, err := ClientFromEnvironment()
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.1:1234", c.base.String())
}

func TestClientKinds(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/kinds", r.URL.Path)
		require.True(t, strings.HasPrefix(r.UserAgent(), "grolp/"))
		json.NewEncoder(w).Encode(KindsResponse{Kinds: []string{"alfred", "embodied"}}) //nolint:errcheck
	})

	resp, err := c.Kinds(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"alfred", "embodied"}, resp.Kinds)
}

func TestClientResolve(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/configs/alfred", r.URL.Path)

		var req ResolveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.EqualValues(t, 5, req.Overrides["num_actions"])

		json.NewEncoder(w).Encode(ResolveResponse{ //nolint:errcheck
			Kind:     "alfred",
			Config:   map[string]any{"num_actions": 5},
			Diff:     map[string]any{"num_actions": 5},
			Warnings: []string{"layout"},
		})
	})

	resp, err := c.Resolve(t.Context(), "alfred", &ResolveRequest{Overrides: map[string]any{"num_actions": 5}})
	require.NoError(t, err)
	require.Equal(t, "alfred", resp.Kind)
	require.EqualValues(t, 5, resp.Diff["num_actions"])
	require.Equal(t, []string{"layout"}, resp.Warnings)
}

func TestClientError(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"JSON-Fehler", http.StatusNotFound, `{"error":"unknown config kind"}`, "unknown config kind"},
		{"Text-Fehler", http.StatusInternalServerError, "boom", "boom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body)) //nolint:errcheck
			})

			_, err := c.Defaults(t.Context(), "teach")
			require.Error(t, err)

			var serr StatusError
			require.ErrorAs(t, err, &serr)
			require.Equal(t, tc.status, serr.StatusCode)
			require.Equal(t, tc.wantMsg, serr.ErrorMessage)
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	require.Equal(t, "404 Not Found: gone", StatusError{Status: "404 Not Found", ErrorMessage: "gone"}.Error())
	require.Equal(t, "gone", StatusError{ErrorMessage: "gone"}.Error())
	require.Contains(t, StatusError{}.Error(), "grolp server logs")
}
