package clientes

// batch.go implements bulk ingestion of candidate records.
//
// A batch is processed strictly in input order, one store session per
// accepted item. Items are isolated: a rejected candidate never blocks the
// ones after it, and a batch with both accepted and rejected items is a
// normal terminal state, not a failure. Only two things abort a run: a
// payload that is not a list (caller contract violation, nothing is
// processed) and a store failure (the in-flight run stops and everything
// accepted so far stays persisted).

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrMalformedBatch is returned when a batch payload is not a list of
// candidate records. The whole call fails before any item is processed.
var ErrMalformedBatch = errors.New("payload de lote deve ser uma lista de clientes")

// Rejection records one candidate that failed validation: its zero-based
// position in the input, the original payload and every reason that failed.
type Rejection struct {
	Indice  int       `json:"indice"`
	Cliente Candidate `json:"cliente"`
	Erros   []string  `json:"erros"`
}

// BatchResult partitions a processed batch. Accepted holds the original
// payloads that passed validation and were persisted, in input order;
// Rejected holds the failures. len(Accepted)+len(Rejected) always equals the
// input length for a completed run.
type BatchResult struct {
	ID       string      `json:"lote_id"`
	Accepted []Candidate `json:"criados"`
	Rejected []Rejection `json:"falhas"`
}

// Ingestor applies validation and persistence across candidate lists.
type Ingestor struct {
	store Store
}

// NewIngestor creates an Ingestor backed by the given store.
func NewIngestor(store Store) *Ingestor {
	return &Ingestor{store: store}
}

// Process runs the batch pipeline over candidates, in order:
// extract and trim the five fields, run every validation check, then either
// record the rejection with its full reason list or persist the record.
//
// On a store failure the partial result is returned together with the error;
// items accepted before the failure are already durable, items at and after
// the failing index were not examined.
func (g *Ingestor) Process(ctx context.Context, candidates []Candidate) (BatchResult, error) {
	result := BatchResult{
		ID:       uuid.New().String(),
		Accepted: []Candidate{},
		Rejected: []Rejection{},
	}

	logger := slog.Default().With("lote_id", result.ID)
	logger.Info("lote iniciado", "itens", len(candidates))

	for indice, cliente := range candidates {
		in := InputFromCandidate(cliente)

		erros := Validate(in)
		if len(erros) > 0 {
			result.Rejected = append(result.Rejected, Rejection{
				Indice:  indice,
				Cliente: cliente,
				Erros:   erros,
			})
			continue
		}

		_, err := g.store.Create(ctx, Cliente{
			Nome:           in.Nome,
			Email:          in.Email,
			Telefone:       in.Telefone,
			CPF:            in.CPF,
			DataNascimento: in.DataNascimento,
		})
		if err != nil {
			logger.Error("lote interrompido",
				"indice", indice,
				"aceitos", len(result.Accepted),
				"rejeitados", len(result.Rejected),
				"error", err,
			)
			return result, fmt.Errorf("criar cliente no índice %d: %w", indice, err)
		}

		result.Accepted = append(result.Accepted, cliente)
	}

	logger.Info("lote concluído",
		"aceitos", len(result.Accepted),
		"rejeitados", len(result.Rejected),
	)
	return result, nil
}

// ProcessJSON decodes a JSON payload and runs Process over it. A payload
// whose top level is not an array fails with ErrMalformedBatch before any
// item is processed.
func (g *Ingestor) ProcessJSON(ctx context.Context, payload []byte) (BatchResult, error) {
	var candidates []Candidate
	if err := json.Unmarshal(payload, &candidates); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return BatchResult{}, fmt.Errorf("%w: %s", ErrMalformedBatch, typeErr.Value)
		}
		return BatchResult{}, fmt.Errorf("%w: %v", ErrMalformedBatch, err)
	}
	return g.Process(ctx, candidates)
}
