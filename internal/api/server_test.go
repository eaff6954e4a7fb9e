package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-cascade/components/regions"
	"github.com/goliatone/go-cascade/internal/config"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
)

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	tree, err := regions.NewTree([]regions.Region{
		{ID: "330000", NameCN: "Zhejiang", Children: []regions.Region{
			{ID: "330100", NameCN: "Hangzhou", Children: []regions.Region{
				{ID: "330106", NameCN: "Xihu"},
			}},
		}},
		{ID: "110000", NameCN: "Beijing"},
	})
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	renderer, err := vanilla.New(vanilla.WithGlobalData(cfg.PageGlobals()))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if cfg.Param == "" {
		cfg.Param = "id"
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = time.Second
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(tree, renderer, log, cfg)
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	return srv
}

func do(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	if _, err := NewServer(nil, nil, nil, config.Config{}); err == nil {
		t.Fatalf("expected error for missing tree")
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	rec := do(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestServer_RegionsEndpoint(t *testing.T) {
	srv := newTestServer(t, config.Config{BasePath: "/cascade"})
	if srv.RegionsPath() != "/cascade/api/regions" {
		t.Fatalf("unexpected regions path %q", srv.RegionsPath())
	}

	rec := do(t, srv, http.MethodGet, "/cascade/api/regions?id=330000", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload regions.Response
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != 1 || len(payload.Data) != 1 || payload.Data[0].ID != "330100" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestServer_RegionsRequireAPIKey(t *testing.T) {
	srv := newTestServer(t, config.Config{APIKey: "secret"})

	if rec := do(t, srv, http.MethodGet, "/api/regions", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}
	bad := http.Header{"Authorization": {"Bearer nope"}}
	if rec := do(t, srv, http.MethodGet, "/api/regions", bad); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
	good := http.Header{"Authorization": {"Bearer secret"}}
	if rec := do(t, srv, http.MethodGet, "/api/regions", good); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("health must stay public, got %d", rec.Code)
	}
}

func TestServer_RegionsRejectionUsesJSONError(t *testing.T) {
	srv := newTestServer(t, config.Config{APIKey: "secret"})
	var logs bytes.Buffer
	srv.log = slog.New(slog.NewTextHandler(&logs, nil))

	for _, tc := range []struct {
		name   string
		header http.Header
		want   string
	}{
		{name: "missing", want: "missing authorization"},
		{name: "wrong scheme", header: http.Header{"Authorization": {"Basic secret"}}, want: "missing authorization"},
		{name: "wrong key", header: http.Header{"Authorization": {"bearer nope"}}, want: "invalid api key"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			logs.Reset()
			rec := do(t, srv, http.MethodGet, "/api/regions?id=330000", tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected json content type, got %q", ct)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Fatalf("expected WWW-Authenticate header")
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tc.want {
				t.Fatalf("expected error %q, got %v", tc.want, body)
			}
			for _, want := range []string{"regions request rejected", tc.want, "path=/api/regions"} {
				if !strings.Contains(logs.String(), want) {
					t.Fatalf("expected %q in log, got %q", want, logs.String())
				}
			}
		})
	}

	lower := http.Header{"Authorization": {"bearer secret"}}
	if rec := do(t, srv, http.MethodGet, "/api/regions", lower); rec.Code != http.StatusOK {
		t.Fatalf("expected scheme to be case-insensitive, got %d", rec.Code)
	}
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	for _, tc := range []struct {
		status int
		want   string
	}{
		{status: http.StatusOK, want: "level=INFO"},
		{status: http.StatusNotFound, want: "level=WARN"},
		{status: http.StatusBadGateway, want: "level=ERROR"},
	} {
		var logs bytes.Buffer
		h := requestLogger(slog.New(slog.NewTextHandler(&logs, nil)))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte("body"))
		}))
		do(t, h, http.MethodGet, "/api/regions?id=1", nil)

		out := logs.String()
		for _, want := range []string{tc.want, "status=" + strconv.Itoa(tc.status), "bytes=4", `query="id=1"`} {
			if !strings.Contains(out, want) {
				t.Fatalf("status %d: expected %q in log, got %q", tc.status, want, out)
			}
		}
	}
}

func TestServer_OpenAPI(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	rec := do(t, srv, http.MethodGet, "/openapi.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/api/regions"]; !ok {
		t.Fatalf("expected /api/regions in paths, got %v", paths)
	}
}

func TestServer_PagePopulatesFirstLevel(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	rec := do(t, srv, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	html := rec.Body.String()
	for _, want := range []string{
		`data-endpoint="/api/regions"`,
		`<select name="province" level="1">`,
		`<option value="330000">Zhejiang</option>`,
		`<option value="110000">Beijing</option>`,
		`<select name="district" level="3">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page:\n%s", want, html)
		}
	}
	if strings.Contains(html, "Hangzhou") {
		t.Fatalf("second level must stay empty without a selection:\n%s", html)
	}
}

func TestServer_PageUsesConfiguredGlobals(t *testing.T) {
	srv := newTestServer(t, config.Config{PageTitle: "Cities", PageLang: "zh"})
	rec := do(t, srv, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	html := rec.Body.String()
	for _, want := range []string{`<html lang="zh">`, "<title>Cities</title>", `action="/"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page:\n%s", want, html)
		}
	}
}

func TestServer_PageFollowsQuerySelections(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	rec := do(t, srv, http.MethodGet, "/?province=330000&city=330100&district=missing", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	html := rec.Body.String()
	for _, want := range []string{
		`<option value="330000" selected>Zhejiang</option>`,
		`<option value="330100" selected>Hangzhou</option>`,
		`<option value="330106">Xihu</option>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page:\n%s", want, html)
		}
	}
}

func TestServer_PageJSONFormat(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	rec := do(t, srv, http.MethodGet, "/?format=json&province=330000", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var view render.ChainView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Controls) != 3 || view.Controls[0].Value != "330000" {
		t.Fatalf("unexpected chain view: %+v", view)
	}
	if got := view.Controls[1].Options; len(got) != 2 || got[1].Text != "Hangzhou" {
		t.Fatalf("expected city populated, got %+v", got)
	}

	if rec := do(t, srv, http.MethodGet, "/?format=xml", nil); rec.Code != http.StatusNotAcceptable {
		t.Fatalf("expected 406 for unknown format, got %d", rec.Code)
	}
}

func TestJoinPath(t *testing.T) {
	cases := map[[2]string]string{
		{"", "/"}:                     "/",
		{"/cascade/", "/"}:            "/cascade/",
		{"/cascade", "/openapi.json"}: "/cascade/openapi.json",
	}
	for in, want := range cases {
		if got := joinPath(in[0], in[1]); got != want {
			t.Fatalf("joinPath(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
