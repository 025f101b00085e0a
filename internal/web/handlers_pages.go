package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/pvbarbosa/cadastro/internal/clientes"
	"github.com/pvbarbosa/cadastro/internal/web/templates"
)

// renderPage writes a component wrapped in the shared layout.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Layout(title, body).Render(r.Context(), w); err != nil {
		// Headers are already out; nothing left but to log.
		slog.Error("render error", "path", r.URL.Path, "error", err)
	}
}

// formInput extracts the five client fields from a posted form.
func formInput(r *http.Request) clientes.Input {
	return clientes.Input{
		Nome:           r.FormValue("nome"),
		Email:          r.FormValue("email"),
		Telefone:       r.FormValue("telefone"),
		CPF:            r.FormValue("cpf"),
		DataNascimento: r.FormValue("data_nascimento"),
	}
}

func clienteFromInput(in clientes.Input) clientes.Cliente {
	in = in.Trimmed()
	return clientes.Cliente{
		Nome:           in.Nome,
		Email:          in.Email,
		Telefone:       in.Telefone,
		CPF:            in.CPF,
		DataNascimento: in.DataNascimento,
	}
}

// handleListPage renders the main table, filtered by ?nome= when present.
func (s *Server) handleListPage(w http.ResponseWriter, r *http.Request) {
	busca := strings.TrimSpace(r.URL.Query().Get("nome"))

	var (
		lista []clientes.Cliente
		err   error
	)
	if busca != "" {
		lista, err = s.service.Search(r.Context(), busca)
	} else {
		lista, err = s.service.List(r.Context())
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.renderPage(w, r, http.StatusOK, "Clientes", templates.ClienteList(lista, busca))
}

// handleNewPage renders an empty create form.
func (s *Server) handleNewPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "Novo cliente",
		templates.ClienteForm("/clientes", clientes.Cliente{}, nil))
}

// handleCreateForm persists a new client from the form. Validation failures
// re-render the form with the reason list and the submitted values intact.
func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	in := formInput(r)

	if _, err := s.service.Create(r.Context(), in); err != nil {
		var verr *clientes.ValidationError
		if errors.As(err, &verr) {
			s.renderPage(w, r, http.StatusUnprocessableEntity, "Novo cliente",
				templates.ClienteForm("/clientes", clienteFromInput(in), verr.Erros))
			return
		}
		s.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEditPage renders the edit form pre-filled with the stored record.
func (s *Server) handleEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, clientes.ErrNotFound)
		return
	}

	c, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.renderPage(w, r, http.StatusOK, "Editar cliente",
		templates.ClienteForm(fmt.Sprintf("/clientes/%d", c.ID), c, nil))
}

// handleUpdateForm replaces a client from the form. A field left blank keeps
// the stored value: the form surface merges before calling the core, which
// itself is strictly full-replace.
func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, clientes.ErrNotFound)
		return
	}

	atual, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	in := mergeInput(formInput(r), atual)

	if _, err := s.service.Update(r.Context(), id, in); err != nil {
		var verr *clientes.ValidationError
		if errors.As(err, &verr) {
			s.renderPage(w, r, http.StatusUnprocessableEntity, "Editar cliente",
				templates.ClienteForm(fmt.Sprintf("/clientes/%d", id), clienteFromInput(in), verr.Erros))
			return
		}
		s.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// mergeInput fills blank form fields from the stored record.
func mergeInput(in clientes.Input, atual clientes.Cliente) clientes.Input {
	in = in.Trimmed()
	if in.Nome == "" {
		in.Nome = atual.Nome
	}
	if in.Email == "" {
		in.Email = atual.Email
	}
	if in.Telefone == "" {
		in.Telefone = atual.Telefone
	}
	if in.CPF == "" {
		in.CPF = atual.CPF
	}
	if in.DataNascimento == "" {
		in.DataNascimento = atual.DataNascimento
	}
	return in
}

// handleDeleteForm removes a client and returns to the list.
func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, clientes.ErrNotFound)
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
