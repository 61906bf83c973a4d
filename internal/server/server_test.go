package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/internal/testhelper"
	"github.com/agentstation/llmproviders/pkg/providers"
	"github.com/agentstation/llmproviders/pkg/providers/ollama"
)

const tags = `{"models":[{"name":"Llama 3","model":"llama3"},{"name":"Nomic","model":"nomic-embed-text"}]}`

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, baseURL string) http.Handler {
	t.Helper()

	reg := providers.NewRegistry()
	require.NoError(t, ollama.Register(reg))

	lookup := providers.NewStaticModels()
	lookup.Set("home", providers.ConfiguredModels{
		Chat: []providers.Model{{Name: "Custom", Key: "custom"}},
	})
	home := ollama.New("home", ollama.Config{Mode: ollama.ModeLocal, BaseURL: baseURL}, ollama.WithModelLookup(lookup))

	app := &appcontext.Mock{Reg: reg, Instances: []providers.Provider{home}}
	return New(app, DefaultConfig()).Handler()
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, "http://127.0.0.1:1")

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec, env := get(t, h, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Nil(t, env.Error)
		assert.Contains(t, string(env.Data), `"status":"healthy"`)
	}
}

func TestTypes(t *testing.T) {
	h := newTestServer(t, "http://127.0.0.1:1")

	rec, env := get(t, h, "/api/v1/types")
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Types []struct {
			Key    string                  `json:"key"`
			Fields []providers.ConfigField `json:"fields"`
		} `json:"types"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Count)
	assert.Equal(t, "ollama", data.Types[0].Key)
	assert.Len(t, data.Types[0].Fields, 3)

	rec, env = get(t, h, "/api/v1/types/ollama/fields")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"key":"baseURL"`)

	rec, env = get(t, h, "/api/v1/types/missing/fields")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestProviders(t *testing.T) {
	upstream := testhelper.NewOllama(t, tags)
	h := newTestServer(t, upstream.URL)

	rec, env := get(t, h, "/api/v1/providers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"id":"home"`)
	assert.Contains(t, string(env.Data), `"baseURL":"`+upstream.URL+`"`)

	rec, _ = get(t, h, "/api/v1/providers/home")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = get(t, h, "/api/v1/providers/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
}

func TestProviderModels(t *testing.T) {
	upstream := testhelper.NewOllama(t, tags)
	h := newTestServer(t, upstream.URL)

	rec, env := get(t, h, "/api/v1/providers/home/models")
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Models providers.ModelList `json:"models"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []providers.Model{
		{Name: "Llama 3", Key: "llama3"},
		{Name: "Nomic", Key: "nomic-embed-text"},
		{Name: "Custom", Key: "custom"},
	}, data.Models.Chat)
	assert.Len(t, data.Models.Embedding, 2)

	for kind, other := range map[string]string{"embedding": "chat", "chat": "embedding"} {
		rec, env = get(t, h, "/api/v1/providers/home/models?kind="+kind)
		require.Equal(t, http.StatusOK, rec.Code)
		var filtered struct {
			Models map[string]json.RawMessage `json:"models"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &filtered))
		assert.Contains(t, filtered.Models, kind)
		assert.NotContains(t, filtered.Models, other, "filtered kind is omitted, not null")
	}

	rec, _ = get(t, h, "/api/v1/providers/home/models?kind=image")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProviderModels_EmptyCatalog(t *testing.T) {
	upstream := testhelper.NewOllama(t, `{"models":[]}`)
	h := newTestServer(t, upstream.URL)

	rec, env := get(t, h, "/api/v1/providers/home/models?kind=embedding")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"models":{"embedding":[]}`)
}

func TestProviderModels_Unreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	h := newTestServer(t, url)
	rec, env := get(t, h, "/api/v1/providers/home/models")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, rec.Body.String(), "Error connecting to Ollama API")
}

func TestCORSEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSEnabled = true
	h := New(&appcontext.Mock{}, cfg).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/types", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPServer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "0.0.0.0"
	cfg.Port = 9090
	srv := New(&appcontext.Mock{}, cfg)

	hs := srv.HTTPServer()
	assert.Equal(t, "0.0.0.0:9090", hs.Addr)
	assert.Equal(t, cfg.ReadTimeout, hs.ReadTimeout)
	assert.NotNil(t, hs.Handler)
	assert.False(t, srv.StartTime().IsZero())
}
