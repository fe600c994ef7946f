package envconfig

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHost(t *testing.T) {
	cases := map[string]struct {
		value  string
		expect string
	}{
		"empty":               {"", "http://127.0.0.1:11500"},
		"only address":        {"1.2.3.4", "http://1.2.3.4:11500"},
		"only port":           {":1234", "http://:1234"},
		"address and port":    {"1.2.3.4:1234", "http://1.2.3.4:1234"},
		"hostname":            {"example.com", "http://example.com:11500"},
		"hostname and port":   {"example.com:1234", "http://example.com:1234"},
		"zero port":           {":0", "http://:0"},
		"too large port":      {":66000", "http://:11500"},
		"too small port":      {":-1", "http://:11500"},
		"ipv6 localhost":      {"[::1]", "http://[::1]:11500"},
		"ipv6 world open":     {"[::]", "http://[::]:11500"},
		"ipv6 no brackets":    {"::1", "http://[::1]:11500"},
		"ipv6 + port":         {"[::1]:1337", "http://[::1]:1337"},
		"extra space":         {" 1.2.3.4 ", "http://1.2.3.4:11500"},
		"extra quotes":        {"\"1.2.3.4\"", "http://1.2.3.4:11500"},
		"https":               {"https://1.2.3.4", "https://1.2.3.4:443"},
		"http":                {"http://1.2.3.4", "http://1.2.3.4:80"},
		"path":                {"http://1.2.3.4/configs", "http://1.2.3.4:80/configs"},
		"https with port":     {"https://1.2.3.4:1234", "https://1.2.3.4:1234"},
		"single quotes":       {"'1.2.3.4'", "http://1.2.3.4:11500"},
		"unknown scheme port": {"grpc://1.2.3.4:50051", "grpc://1.2.3.4:50051"},
	}

	for name, tt := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("GROLP_HOST", tt.value)
			if host := Host(); host.String() != tt.expect {
				t.Errorf("%s: expected %s, got %s", name, tt.expect, host.String())
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	t.Setenv("GROLP_ORIGINS", "https://example.com,app://grolp")

	got := AllowedOrigins()
	if diff := cmp.Diff([]string{"https://example.com", "app://grolp"}, got[:2]); diff != "" {
		t.Errorf("%s", diff)
	}
	if len(got) != 2+12 {
		t.Errorf("len = %d, expected 14", len(got))
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"t":     slog.LevelDebug,
		"1":     slog.LevelDebug,
		"2":     slog.Level(-8),
		"-1":    slog.LevelWarn,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("GROLP_DEBUG", k)
			if i := LogLevel(); i != v {
				t.Errorf("%s: expected %d, got %d", k, v, i)
			}
		})
	}
}

func TestConfigKind(t *testing.T) {
	t.Setenv("GROLP_CONFIG_KIND", "")
	if got := ConfigKind(); got != "alfred" {
		t.Errorf("expected alfred, got %q", got)
	}

	t.Setenv("GROLP_CONFIG_KIND", "embodied")
	if got := ConfigKind(); got != "embodied" {
		t.Errorf("expected embodied, got %q", got)
	}
}

func TestCheckParallel(t *testing.T) {
	cases := map[string]uint{
		"":    4,
		"8":   8,
		"abc": 4,
		"-2":  4,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("GROLP_CHECK_PARALLEL", k)
			if got := CheckParallel(); got != v {
				t.Errorf("%s: expected %d, got %d", k, v, got)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("GROLP_CONFIG_DIR", "")
	if got := ConfigDir(); got != "." {
		t.Errorf("expected ., got %q", got)
	}

	t.Setenv("GROLP_CONFIG_DIR", "/ckpt/run1")
	if got := ConfigDir(); got != "/ckpt/run1" {
		t.Errorf("expected /ckpt/run1, got %q", got)
	}
}

func TestAsMapHidesToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_secret")

	for k, v := range Values() {
		if strings.Contains(v, "hf_secret") {
			t.Errorf("%s enthaelt den Token: %s", k, v)
		}
	}
	if got := AsMap()["HF_TOKEN"].Value; got != true {
		t.Errorf("HF_TOKEN = %v, erwartet true", got)
	}
}
