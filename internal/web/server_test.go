package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pvbarbosa/cadastro/internal/clientes"
	"github.com/pvbarbosa/cadastro/internal/config"
	"github.com/pvbarbosa/cadastro/internal/store/sqlite"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    time.Minute,
			RequestTimeout: time.Minute,
		},
		Batch: config.BatchConfig{
			MaxItems:    10,
			MaxBodySize: 1 << 20,
		},
		Rate: config.RateLimitConfig{
			Enabled: false,
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "text",
		},
	}
}

// testServer builds a server over an in-memory SQLite store with an isolated
// metrics registry.
func testServer(t *testing.T) (*Server, *clientes.Service) {
	t.Helper()

	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	service := clientes.NewService(store)
	srv := NewServerWithRegistry(service, testConfig(), prometheus.NewRegistry())
	return srv, service
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestAPICreateAndGet(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/clientes",
		`{"nome": "Ana", "email": "ana@example.com", "cpf": "111.222.333-44"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body = %s", rec.Code, rec.Body.String())
	}

	created := decode[clientes.Cliente](t, rec)
	if created.ID == 0 || created.Nome != "Ana" {
		t.Fatalf("created = %+v", created)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/clientes/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	got := decode[clientes.Cliente](t, rec)
	if got != created {
		t.Errorf("GET = %+v, want %+v", got, created)
	}
}

func TestAPICreate_ValidationError(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/clientes",
		`{"nome": "", "email": "foo@bar"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	resp := decode[ErrorResponse](t, rec)
	if resp.Code != "VAL001" {
		t.Errorf("Code = %q, want VAL001", resp.Code)
	}
	if len(resp.Erros) != 2 {
		t.Fatalf("Erros = %v, want 2 reasons", resp.Erros)
	}
	if resp.Erros[0] != clientes.ReasonNomeObrigatorio || resp.Erros[1] != clientes.ReasonEmailInvalido {
		t.Errorf("Erros = %v", resp.Erros)
	}
}

func TestAPIGet_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/clientes/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); resp.Code != "REG001" {
		t.Errorf("Code = %q, want REG001", resp.Code)
	}
}

func TestAPIGet_BadID(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/clientes/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAPIUpdate_FullReplace(t *testing.T) {
	srv, service := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/clientes",
		`{"nome": "Ana", "email": "ana@example.com"}`)

	rec := doJSON(t, srv, http.MethodPut, "/api/clientes/1", `{"nome": "Ana Paula"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", rec.Code, rec.Body.String())
	}

	got, err := service.Get(httptest.NewRequest(http.MethodGet, "/", nil).Context(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Nome != "Ana Paula" || got.Email != "" {
		t.Errorf("after PUT: %+v, want replaced fields", got)
	}
}

func TestAPIDelete(t *testing.T) {
	srv, _ := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/clientes", `{"nome": "Ana"}`)

	rec := doJSON(t, srv, http.MethodDelete, "/api/clientes/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/clientes/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}

func TestAPISearch(t *testing.T) {
	srv, _ := testServer(t)

	for _, nome := range []string{"Ana Paula", "Mariana", "Bruno"} {
		doJSON(t, srv, http.MethodPost, "/api/clientes", `{"nome": "`+nome+`"}`)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/clientes/busca?nome=ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	lista := decode[[]clientes.Cliente](t, rec)
	if len(lista) != 2 {
		t.Errorf("search returned %d records, want 2", len(lista))
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/clientes/busca", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty search status = %d, want 400", rec.Code)
	}
}

func TestBatch_Mixed(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/clientes/lote", `[
		{"nome": "Ana", "email": "ana@example.com"},
		{"nome": "", "cpf": "12"},
		{"nome": "Bruno"}
	]`)
	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207, body = %s", rec.Code, rec.Body.String())
	}

	resp := decode[batchResponse](t, rec)
	if resp.LoteID == "" {
		t.Error("response has no lote_id")
	}
	if resp.Total != 3 || resp.Aceitos != 2 || resp.Rejeitados != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", resp.Total, resp.Aceitos, resp.Rejeitados)
	}
	if len(resp.Falhas) != 1 || resp.Falhas[0].Indice != 1 {
		t.Fatalf("Falhas = %+v", resp.Falhas)
	}
	if len(resp.Falhas[0].Erros) != 2 {
		t.Errorf("Erros = %v, want nome and cpf reasons", resp.Falhas[0].Erros)
	}
}

func TestBatch_AllAccepted(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/clientes/lote",
		`[{"nome": "Ana"}, {"nome": "Bruno"}]`)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestBatch_AllRejected(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/clientes/lote",
		`[{"nome": ""}, {"nome": "   "}]`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestBatch_Malformed(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/clientes/lote", `{"nome": "Ana"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); resp.Code != "REG002" {
		t.Errorf("Code = %q, want REG002", resp.Code)
	}
}

func TestBatch_TooManyItems(t *testing.T) {
	srv, _ := testServer(t)

	items := make([]string, 11)
	for i := range items {
		items[i] = `{"nome": "Ana"}`
	}
	body := "[" + strings.Join(items, ",") + "]"

	rec := doJSON(t, srv, http.MethodPost, "/api/clientes/lote", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestListPage(t *testing.T) {
	srv, _ := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/clientes", `{"nome": "Ana"}`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Cadastro de Clientes") || !strings.Contains(body, "Ana") {
		t.Errorf("page is missing expected content: %s", body)
	}
}

func TestCreateForm(t *testing.T) {
	srv, service := testServer(t)

	rec := doForm(t, srv, "/clientes", url.Values{
		"nome":  {"Ana"},
		"email": {"ana@example.com"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303, body = %s", rec.Code, rec.Body.String())
	}

	lista, err := service.List(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(lista) != 1 || lista[0].Nome != "Ana" {
		t.Errorf("store = %+v", lista)
	}
}

func TestCreateForm_ValidationRerendersForm(t *testing.T) {
	srv, _ := testServer(t)

	rec := doForm(t, srv, "/clientes", url.Values{
		"nome":  {""},
		"email": {"ana@example.com"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, clientes.ReasonNomeObrigatorio) {
		t.Errorf("page is missing the validation reason: %s", body)
	}
	if !strings.Contains(body, "ana@example.com") {
		t.Errorf("form lost the submitted email: %s", body)
	}
}

func TestUpdateForm_BlankFieldKeepsStoredValue(t *testing.T) {
	srv, service := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/clientes",
		`{"nome": "Ana", "email": "ana@example.com"}`)

	rec := doForm(t, srv, "/clientes/1", url.Values{
		"nome":  {"Ana Paula"},
		"email": {""},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303, body = %s", rec.Code, rec.Body.String())
	}

	got, err := service.Get(httptest.NewRequest(http.MethodGet, "/", nil).Context(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Nome != "Ana Paula" {
		t.Errorf("Nome = %q, want updated", got.Nome)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("Email = %q, blank form field should keep the stored value", got.Email)
	}
}

func TestDeleteForm(t *testing.T) {
	srv, service := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/clientes", `{"nome": "Ana"}`)

	rec := doForm(t, srv, "/clientes/1/excluir", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	lista, _ := service.List(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	if len(lista) != 0 {
		t.Errorf("store still holds %d records", len(lista))
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
