package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/blob/fs"
	apihttp "github.com/rezkam/catalog/internal/infrastructure/http"
	"github.com/rezkam/catalog/internal/infrastructure/http/response"
	"github.com/rezkam/catalog/internal/infrastructure/persistence/sqlstore"
)

const (
	adminKey = "admin-key"
	aliceKey = "alice-key"
	bobKey   = "bob-key"
)

type staticKeys map[string]domain.Scope

func (k staticKeys) Authenticate(_ context.Context, apiKey string) (domain.Scope, error) {
	s, ok := k[apiKey]
	if !ok {
		return domain.Scope{}, domain.ErrUnauthorized
	}
	return s, nil
}

func newAPI(t *testing.T, cfg apihttp.ServerConfig) http.Handler {
	t.Helper()
	ctx := context.Background()

	store, err := sqlstore.Open(ctx, sqlstore.DBConfig{Dialect: sqlstore.SQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	content, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	svc := catalog.NewService(store, content, catalog.Config{Meter: noop.NewMeterProvider().Meter("test")})
	keys := staticKeys{
		adminKey: domain.AdminScope(),
		aliceKey: domain.AccountScope("alice"),
		bobKey:   domain.AccountScope("bob"),
	}
	return apihttp.NewAPIServer(svc, keys, cfg).Handler()
}

type client struct {
	t *testing.T
	h http.Handler
}

func (c client) do(method, path, key string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	return w
}

// decode reads the JSON body of w into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func detailFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	var out []string
	for _, d := range body.Error.Details {
		out = append(out, d.Field)
	}
	return out
}

func names(t *testing.T, w *httptest.ResponseRecorder, field string) []string {
	t.Helper()
	items := decode(t, w)["items"].([]any)
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.(map[string]any)[field].(string)
	}
	return out
}

func movieBody(name string) map[string]any {
	return map[string]any{"czech_name": name, "original_name": name, "year": 2001, "media": []int{90}}
}

func TestHealth_NoAuth(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}

	w := c.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPI_RequiresKey(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/movies", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/movies", "wrong", nil).Code)
}

func TestMovies_Lifecycle(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}

	ids := map[string]string{}
	for _, n := range []string{"A", "B", "C"} {
		w := c.do(http.MethodPost, "/api/v1/movies", aliceKey, movieBody(n))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "alice", body["owner_id"])
		ids[n] = body["id"].(string)
	}

	w := c.do(http.MethodPost, "/api/v1/movies/"+ids["C"]+"/move-up", aliceKey, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do(http.MethodGet, "/api/v1/movies", aliceKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"A", "C", "B"}, names(t, w, "czech_name"))

	w = c.do(http.MethodPost, "/api/v1/movies/"+ids["A"]+"/move-up", aliceKey, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"position"}, detailFields(t, w))

	upd := movieBody("B")
	upd["position"] = 0
	w = c.do(http.MethodPut, "/api/v1/movies/"+ids["B"], aliceKey, upd)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 0, decode(t, w)["position"])

	w = c.do(http.MethodPost, "/api/v1/movies/"+ids["A"]+"/duplicate", aliceKey, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 3, decode(t, w)["position"])

	w = c.do(http.MethodDelete, "/api/v1/movies/"+ids["A"], aliceKey, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do(http.MethodGet, "/api/v1/movies/"+ids["A"], aliceKey, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPost, "/api/v1/movies/positions", aliceKey, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do(http.MethodGet, "/api/v1/movies/stats", aliceKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)
	assert.EqualValues(t, 3, stats["count"])
	assert.EqualValues(t, 270, stats["length"])
}

func TestMovies_ScopeIsolation(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}
	w := c.do(http.MethodPost, "/api/v1/movies", aliceKey, movieBody("A"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/movies/"+id, bobKey, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/api/v1/movies/"+id, bobKey, nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/movies/"+id, adminKey, nil).Code)

	w = c.do(http.MethodGet, "/api/v1/movies", bobKey, nil)
	assert.Empty(t, names(t, w, "czech_name"))
}

func TestMovies_ValidationDetails(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}
	bad := movieBody("")
	bad["year"] = 1800
	bad["genre_ids"] = []string{"missing"}

	w := c.do(http.MethodPost, "/api/v1/movies", aliceKey, bad)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Subset(t, detailFields(t, w), []string{"czech_name", "original_name", "year", "id"})
}

func TestMovies_InvalidJSON(t *testing.T) {
	h := newAPI(t, apihttp.ServerConfig{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+aliceKey)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNestedRoutes(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}
	w := c.do(http.MethodPost, "/api/v1/shows", aliceKey, map[string]any{"czech_name": "S", "original_name": "S"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	showID := decode(t, w)["id"].(string)

	season := map[string]any{"number": 1, "start_year": 2001, "end_year": 2002, "language": "en"}
	w = c.do(http.MethodPost, "/api/v1/shows/"+showID+"/seasons", aliceKey, season)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	seasonID := decode(t, w)["id"].(string)
	assert.Equal(t, showID, decode(t, w)["show_id"])

	w = c.do(http.MethodPost, "/api/v1/seasons/"+seasonID+"/episodes", aliceKey, map[string]any{"number": 1, "name": "Pilot", "length": 40})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	episodeID := decode(t, w)["id"].(string)

	w = c.do(http.MethodGet, "/api/v1/shows/"+showID+"/seasons", aliceKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)

	w = c.do(http.MethodGet, "/api/v1/episodes/"+episodeID, aliceKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pilot", decode(t, w)["name"])

	w = c.do(http.MethodPost, "/api/v1/shows/"+showID+"/seasons", bobKey, season)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodGet, "/api/v1/seasons", aliceKey, nil)
	assert.NotEqual(t, http.StatusOK, w.Code, "nested kinds are listed through their parent")
}

func TestIntegrity_AdminOnly(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/genres", aliceKey, map[string]any{"name": "Drama"}).Code)

	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/api/v1/genres/integrity", aliceKey, nil).Code)

	w := c.do(http.MethodGet, "/api/v1/genres/integrity", adminKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].(map[string]any)["owner_id"])
}

func TestCheatRoutes(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{})}
	w := c.do(http.MethodPost, "/api/v1/games", aliceKey, map[string]any{"name": "Doom", "media_count": 1, "format": "CD"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	gameID := decode(t, w)["id"].(string)
	path := "/api/v1/games/" + gameID + "/cheat"
	cheat := map[string]any{"data": []map[string]string{{"action": "iddqd", "description": "god mode"}}}

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, path, aliceKey, nil).Code)
	assert.Equal(t, http.StatusCreated, c.do(http.MethodPost, path, aliceKey, cheat).Code)
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, path, aliceKey, cheat).Code)

	cheat["cheat_setting"] = "console"
	w = c.do(http.MethodPut, path, aliceKey, cheat)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console", decode(t, w)["cheat_setting"])

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, path, aliceKey, nil).Code)
}

func TestPictureContent(t *testing.T) {
	h := newAPI(t, apihttp.ServerConfig{})
	c := client{t, h}
	w := c.do(http.MethodPost, "/api/v1/pictures", aliceKey, map[string]any{"name": "poster"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	put := func(contentType, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/pictures/"+id+"/content", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+aliceKey)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w = put("text/plain", "nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = put("image/png", "fake png bytes")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 14, decode(t, w)["size"])

	w = c.do(http.MethodGet, "/api/v1/pictures/"+id+"/content", aliceKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "fake png bytes", w.Body.String())

	w = c.do(http.MethodGet, "/api/v1/pictures/"+id+"/content", bobKey, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBodyLimit(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{MaxBodyBytes: 64})}
	body := movieBody(strings.Repeat("x", 100))

	w := c.do(http.MethodPost, "/api/v1/movies", aliceKey, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimit(t *testing.T) {
	c := client{t, newAPI(t, apihttp.ServerConfig{RateLimit: 0.001, RateBurst: 1})}

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/movies", aliceKey, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, c.do(http.MethodGet, "/api/v1/movies", aliceKey, nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/movies", bobKey, nil).Code)
}

func TestCORS(t *testing.T) {
	h := newAPI(t, apihttp.ServerConfig{CORSOrigins: []string{"https://catalog.example"}})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/movies", nil)
	req.Header.Set("Origin", "https://catalog.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, "https://catalog.example", w.Header().Get("Access-Control-Allow-Origin"))
}
