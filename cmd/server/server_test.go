package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"augmentor/internal/config"
	"augmentor/internal/tablestore"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set("augment.language", "eng")
	cfg, err := config.NewConfigFromViper(v)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	srv, err := newServer(cfg, tablestore.New(client), zaptest.NewLogger(t))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestAugmentEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, out := do(t, ts, http.MethodPost, "/api/v1/augment",
		`{"text": "hello world", "level": "char", "action": "delete", "platform": "pc", "seed": 42}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ello wld", out["augmented"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, out = do(t, ts, http.MethodPost, "/api/v1/augment",
		`{"text": "hello", "level": "word", "action": "teleport"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "unsupported action")

	resp, _ = do(t, ts, http.MethodPost, "/api/v1/augment", `{"text": "hello", "language": "deu"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPost, "/api/v1/augment", `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, out := do(t, ts, http.MethodPost, "/api/v1/augment/batch",
		`{"texts": ["a, b", "c. d"], "level": "punc", "action": "delete", "unit_prob": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"a b", "c d"}, out["augmented"])
}

func TestActionsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, out := do(t, ts, http.MethodGet, "/api/v1/actions/punc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"replace", "delete", "multiply", "swap"}, out["actions"])

	resp, _ = do(t, ts, http.MethodGet, "/api/v1/actions/sentence", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTableEndpoints(t *testing.T) {
	ts := newTestServer(t)
	name := "/api/v1/tables/eng/pc/orfo_words.json"

	resp, _ := do(t, ts, http.MethodPut, name, `{"cat": [["cta"], [0.5]]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPut, name, `{"cat": ["cta"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, out := do(t, ts, http.MethodPost, "/api/v1/augment",
		`{"text": "Cat", "level": "word", "action": "replace"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cta", out["augmented"])

	resp, out = do(t, ts, http.MethodGet, "/api/v1/tables", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"eng/pc/orfo_words.json"}, out["tables"])

	resp, _ = do(t, ts, http.MethodDelete, name, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, name, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, out = do(t, ts, http.MethodPost, "/api/v1/augment",
		`{"text": "Cat", "level": "word", "action": "replace"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cat", out["augmented"])
}
