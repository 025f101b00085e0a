package clientes

import (
	"context"
	"fmt"
	"strings"
)

// ValidationError carries the full list of field-level failures for a single
// record operation. It is an expected, non-fatal outcome: presentation
// layers unwrap it with errors.As and render the reason list instead of a
// generic failure.
type ValidationError struct {
	Erros []string
}

func (e *ValidationError) Error() string {
	return "validação falhou: " + strings.Join(e.Erros, "; ")
}

// Service composes the validator and the store for single-record operations.
// Every surface (web, terminal, import) goes through the same rules here.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying store for composition (batch ingestion).
func (s *Service) Store() Store {
	return s.store
}

// Create validates the input and persists a new record. Returns a
// *ValidationError when any field check fails; store failures pass through
// untranslated.
func (s *Service) Create(ctx context.Context, in Input) (Cliente, error) {
	in = in.Trimmed()
	if erros := Validate(in); len(erros) > 0 {
		return Cliente{}, &ValidationError{Erros: erros}
	}

	c := Cliente{
		Nome:           in.Nome,
		Email:          in.Email,
		Telefone:       in.Telefone,
		CPF:            in.CPF,
		DataNascimento: in.DataNascimento,
	}

	id, err := s.store.Create(ctx, c)
	if err != nil {
		return Cliente{}, fmt.Errorf("criar cliente: %w", err)
	}

	c.ID = id
	return c, nil
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Cliente, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all records in insertion order.
func (s *Service) List(ctx context.Context) ([]Cliente, error) {
	return s.store.List(ctx)
}

// Search returns records whose name contains nomeParte.
func (s *Service) Search(ctx context.Context, nomeParte string) ([]Cliente, error) {
	return s.store.SearchByName(ctx, strings.TrimSpace(nomeParte))
}

// Update validates the input and replaces every field of the record with the
// given id. The core contract is full-replace: callers that want to keep a
// previous value must resupply it. Returns *ValidationError on field
// failures and ErrNotFound if the id is absent.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Cliente, error) {
	in = in.Trimmed()
	if erros := Validate(in); len(erros) > 0 {
		return Cliente{}, &ValidationError{Erros: erros}
	}

	c := Cliente{
		ID:             id,
		Nome:           in.Nome,
		Email:          in.Email,
		Telefone:       in.Telefone,
		CPF:            in.CPF,
		DataNascimento: in.DataNascimento,
	}

	if err := s.store.Update(ctx, c); err != nil {
		return Cliente{}, err
	}
	return c, nil
}

// Delete removes the record with the given id. Deletion is permanent; a
// second delete of the same id reports ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
