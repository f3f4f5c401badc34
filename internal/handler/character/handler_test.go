package character

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/dexter-show/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/dexter-show/backend/internal/service/catalog"
)

func setupRouter() *chi.Mux {
	svc := catalogService.NewService(catalog.NewMemoryStore(catalog.DefaultSeed()), nil, nil)
	handler := New(svc, nil)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeCharacters(t *testing.T, resp *httptest.ResponseRecorder) []catalog.Character {
	t.Helper()
	var out []catalog.Character
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestListCharacters(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodGet, "/personagens", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[
		{"id":1,"nome":"Dexter Morgan","status":"VIVO"},
		{"id":2,"nome":"Debra Morgan","status":"VIVA"},
		{"id":3,"nome":"Sargento Doakes","status":"VIVO"}
	]`, resp.Body.String())
}

func TestGetCharacter(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodGet, "/personagens/2", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"id":2,"nome":"Debra Morgan","status":"VIVA"}`, resp.Body.String())
}

func TestUnknownCharacterReturns404(t *testing.T) {
	r := setupRouter()

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPut, `{"nome":"x","status":"y"}`},
		{http.MethodDelete, ""},
	} {
		resp := do(t, r, tc.method, "/personagens/42", tc.body)
		assert.Equal(t, http.StatusNotFound, resp.Code, tc.method)
		assert.JSONEq(t, `{"detail":"Personagem não encontrado!"}`, resp.Body.String(), tc.method)
	}
}

func TestNonIntegerIDRejected(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodGet, "/personagens/dexter", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestCreateCharacter(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPost, "/personagens", `{"nome":"Lila","status":"VIVA"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.JSONEq(t, `{"id":4,"nome":"Lila","status":"VIVA"}`, resp.Body.String())
	assert.Equal(t, "/personagens/4", resp.Header().Get("Location"))

	list := decodeCharacters(t, do(t, r, http.MethodGet, "/personagens", ""))
	assert.Len(t, list, 4)
}

func TestCreateCharacterAllowsEmptyStrings(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPost, "/personagens", `{"nome":"","status":""}`)
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestCreateCharacterInvalidBody(t *testing.T) {
	r := setupRouter()

	cases := map[string]string{
		"malformed":      `{"nome":`,
		"missing nome":   `{"status":"VIVO"}`,
		"missing status": `{"nome":"Brian"}`,
		"wrong type":     `{"nome":7,"status":"VIVO"}`,
		"null field":     `{"nome":null,"status":"VIVO"}`,
		"empty":          ``,
		"trailing data":  `{"nome":"a","status":"b"} not-json`,
		"two objects":    `{"nome":"a","status":"b"}{"nome":"c","status":"d"}`,
	}
	for name, body := range cases {
		resp := do(t, r, http.MethodPost, "/personagens", body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, name)
	}

	list := decodeCharacters(t, do(t, r, http.MethodGet, "/personagens", ""))
	assert.Len(t, list, 3)
}

func TestUpdateCharacterKeepsPosition(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPut, "/personagens/1", `{"nome":"Dexter Morgan","status":"MORTO"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"id":1,"nome":"Dexter Morgan","status":"MORTO"}`, resp.Body.String())

	list := decodeCharacters(t, do(t, r, http.MethodGet, "/personagens", ""))
	require.Len(t, list, 3)
	assert.Equal(t, catalog.Character{ID: 1, Name: "Dexter Morgan", Status: "MORTO"}, list[0])
}

func TestOversizedBodyRejected(t *testing.T) {
	r := setupRouter()

	body := `{"nome":"` + strings.Repeat("x", maxBodyBytes) + `","status":"VIVO"}`
	resp := do(t, r, http.MethodPost, "/personagens", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	resp = do(t, r, http.MethodPut, "/personagens/1", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	list := decodeCharacters(t, do(t, r, http.MethodGet, "/personagens", ""))
	assert.Len(t, list, 3)
	assert.Equal(t, "Dexter Morgan", list[0].Name)
}

func TestTrailingWhitespaceAccepted(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPost, "/personagens", "{\"nome\":\"Lila\",\"status\":\"VIVA\"}\n  ")
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestUpdateCharacterInvalidBody(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPut, "/personagens/1", `{"nome":"Dexter"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = do(t, r, http.MethodPut, "/personagens/1", `{"nome":"Dexter","status":"MORTO"} trailing`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	got := do(t, r, http.MethodGet, "/personagens/1", "")
	assert.True(t, strings.Contains(got.Body.String(), `"VIVO"`))
}

func TestDeleteCharacter(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodDelete, "/personagens/2", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"detail":"Personagem deletado com sucesso!"}`, resp.Body.String())

	resp = do(t, r, http.MethodGet, "/personagens/2", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateThenDeleteScenario(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPost, "/personagens", `{"nome":"Lila","status":"VIVA"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = do(t, r, http.MethodDelete, "/personagens/2", "")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeCharacters(t, do(t, r, http.MethodGet, "/personagens", ""))
	var ids []int
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int{1, 3, 4}, ids)
}

func TestListCharactersEmptyIsArray(t *testing.T) {
	svc := catalogService.NewService(catalog.NewMemoryStore(catalog.Seed{}), nil, nil)
	r := chi.NewRouter()
	New(svc, nil).RegisterRoutes(r)

	resp := do(t, r, http.MethodGet, "/personagens", "")
	assert.JSONEq(t, `[]`, resp.Body.String())
}
