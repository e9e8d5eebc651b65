package serve

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/broady/swaggerdoc"
	"github.com/broady/swaggerdoc/symbol/memsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petsIDL = `
classes:
  - name: com.x.PetResource
    annotations: ["Path /pets"]
    methods:
      - name: list
        annotations: [GET]
        returns: java.util.List<com.x.Pet>
  - name: com.x.Pet
    fields:
      - {name: id, type: long}
      - {name: owner, type: com.x.Owner}
  - name: com.x.Owner
    fields:
      - {name: name, type: string}
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	src, err := memsrc.Load(strings.NewReader(petsIDL))
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := swaggerdoc.New(src).APIVersion("1.0").BasePath("http://localhost/api").WithLogger(logger)

	srv, err := NewServer(context.Background(), g, logger)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestServer_Models(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/models?type=com.x.Pet")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "com.x.Pet")
	assert.Contains(t, body, "com.x.Owner")

	resp, body = get(t, ts, "/models?type=com.x.Owner")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body, 1)
}

func TestServer_ModelsErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing type", "", http.StatusBadRequest, "invalid_argument"},
		{"malformed type", "?type=List%3C", http.StatusBadRequest, "invalid_argument"},
		{"unknown type", "?type=com.x.Nope", http.StatusNotFound, "not_found"},
		{"primitive", "?type=int", http.StatusNotFound, "not_found"},
		{"container root", "?type=java.util.List%3Ccom.x.Pet%3E", http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, "/models"+tt.query)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestServer_Files(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.0", body["apiVersion"])
	apis, ok := body["apis"].([]any)
	require.True(t, ok)
	require.Len(t, apis, 1)
	assert.Equal(t, "/pets.{format}", apis[0].(map[string]any)["path"])

	resp, body = get(t, ts, "/pets.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/pets", body["resourcePath"])
	assert.Equal(t, "http://localhost/api", body["basePath"])

	resp, body = get(t, ts, "/missing.json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", body["code"])
}
