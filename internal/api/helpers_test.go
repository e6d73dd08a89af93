package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Barty-sim/foodgram-project-react/internal/config"
	"github.com/Barty-sim/foodgram-project-react/internal/model"
	"github.com/Barty-sim/foodgram-project-react/internal/security"
	"github.com/Barty-sim/foodgram-project-react/internal/storage/sqlite"
)

// testServer bundles a Server wired to a temp database with its router.
type testServer struct {
	*Server
	handler http.Handler
	store   *sqlite.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()

	cfgYAML := fmt.Sprintf(
		"media:\n  root: %q\nadmin:\n  bearer_token: admin-secret\n",
		filepath.Join(dir, "media"),
	)
	cfgPath := filepath.Join(dir, "foodgram.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	store, err := sqlite.Open(filepath.Join(dir, "test.db"), 5000)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		metrics: NewMetrics(prometheus.NewRegistry()),
		limiter: security.NewRateLimiter(cfg.Auth.LoginPerMin, time.Minute),
		media:   NewMediaStore(cfg.Media.Root, cfg.Media.MaxBytes),
	}
	s.startedAt = time.Now()

	return &testServer{Server: s, handler: s.buildRouter(), store: store}
}

// do executes a request against the router. Body may be nil, a string, or
// any JSON-marshalable value. A non-empty token is sent as "Token <token>".
func (ts *testServer) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a recorder's JSON body into out.
func decode(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

// registerUser creates an account through the API and returns its id.
func (ts *testServer) registerUser(t *testing.T, email, username string) int64 {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/api/users/", "", map[string]string{
		"email":      email,
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "strongpass1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, rr.Code, rr.Body.String())
	}
	var u userJSON
	decode(t, rr, &u)
	return u.ID
}

// login returns an auth token for a user registered via registerUser.
func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/api/auth/token/login/", "", map[string]string{
		"email":    email,
		"password": "strongpass1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("login %s: status %d body %s", email, rr.Code, rr.Body.String())
	}
	var resp loginResponse
	decode(t, rr, &resp)
	return resp.AuthToken
}

// testImage is a 1x1 PNG as a base64 data URL.
func testImage() string {
	png := []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// seedTag inserts a tag directly into the store and returns it.
func (ts *testServer) seedTag(t *testing.T, name, slug string) model.Tag {
	t.Helper()

	ctx := t.Context()
	if err := ts.store.UpsertTag(ctx, model.Tag{Name: name, Color: "#49B64E", Slug: slug}); err != nil {
		t.Fatalf("upsert tag: %v", err)
	}
	tags, err := ts.store.Tags(ctx)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	for _, tag := range tags {
		if tag.Slug == slug {
			return tag
		}
	}
	t.Fatalf("tag %s missing", slug)
	return model.Tag{}
}

// seedIngredient inserts an ingredient directly into the store.
func (ts *testServer) seedIngredient(t *testing.T, name, unit string) model.Ingredient {
	t.Helper()

	ctx := t.Context()
	if err := ts.store.UpsertIngredient(ctx, model.Ingredient{Name: name, MeasurementUnit: unit}); err != nil {
		t.Fatalf("upsert ingredient: %v", err)
	}
	items, err := ts.store.Ingredients(ctx, name)
	if err != nil || len(items) == 0 {
		t.Fatalf("lookup ingredient %s: %v", name, err)
	}
	return items[0]
}

// createRecipe posts a minimal valid recipe and returns its id.
func (ts *testServer) createRecipe(t *testing.T, token, name string, tag model.Tag, ing model.Ingredient) int64 {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/api/recipes/", token, map[string]any{
		"name":         name,
		"text":         "stir well",
		"cooking_time": 15,
		"image":        testImage(),
		"tags":         []int64{tag.ID},
		"ingredients":  []map[string]any{{"id": ing.ID, "amount": 100}},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create recipe %s: status %d body %s", name, rr.Code, rr.Body.String())
	}
	var resp recipeJSON
	decode(t, rr, &resp)
	return resp.ID
}

// statusLine formats a short failure message for status assertions.
func statusLine(rr *httptest.ResponseRecorder) string {
	return fmt.Sprintf("status %d, body %s", rr.Code, rr.Body.String())
}
