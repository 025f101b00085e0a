package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pvbarbosa/cadastro/internal/clientes"
)

// clientePayload is the JSON request body for create and update.
type clientePayload struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"data_nascimento"`
}

func (p clientePayload) input() clientes.Input {
	return clientes.Input{
		Nome:           p.Nome,
		Email:          p.Email,
		Telefone:       p.Telefone,
		CPF:            p.CPF,
		DataNascimento: p.DataNascimento,
	}
}

// errInvalidID is returned by pathID for a non-numeric id segment.
var errInvalidID = errors.New("id inválido")

// pathID extracts the {id} route parameter as an int64.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// handleList returns every client in insertion order.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	lista, err := s.service.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lista)
}

// handleGet returns a single client by id.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "REG003"})
		return
	}

	c, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleSearch returns clients whose name contains the nome query parameter.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	nome := strings.TrimSpace(r.URL.Query().Get("nome"))
	if nome == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "informe o parâmetro nome",
			Code:  "REG004",
		})
		return
	}

	lista, err := s.service.Search(r.Context(), nome)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lista)
}

// handleCreate validates and persists a new client from a JSON body.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload clientePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "corpo da requisição inválido",
			Code:  "REG005",
		})
		return
	}

	c, err := s.service.Create(r.Context(), payload.input())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// handleUpdate replaces every field of an existing client. The body must
// carry the full desired state; omitted fields become empty.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "REG003"})
		return
	}

	var payload clientePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "corpo da requisição inválido",
			Code:  "REG005",
		})
		return
	}

	c, err := s.service.Update(r.Context(), id, payload.input())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleDelete removes a client permanently.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "REG003"})
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
