package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pvbarbosa/cadastro/internal/clientes"
)

// batchResponse is the JSON body for a processed batch. Falhas carries one
// entry per rejected candidate with its position and full reason list.
type batchResponse struct {
	LoteID     string               `json:"lote_id"`
	Total      int                  `json:"total"`
	Aceitos    int                  `json:"aceitos"`
	Rejeitados int                  `json:"rejeitados"`
	Falhas     []clientes.Rejection `json:"falhas"`
}

// handleBatch ingests a JSON array of candidate records. The status code
// summarizes the partition: 201 when every candidate was accepted, 422 when
// every candidate was rejected, 207 for a mix, 400 when the payload is not
// an array or exceeds the configured limits.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Batch.MaxBodySize)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("corpo do lote excede %d bytes", s.cfg.Batch.MaxBodySize),
				Code:  "REG006",
			})
			return
		}
		s.respondError(w, r, err)
		return
	}

	var candidates []clientes.Candidate
	if err := json.Unmarshal(payload, &candidates); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", clientes.ErrMalformedBatch, err))
		return
	}

	if len(candidates) > s.cfg.Batch.MaxItems {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("lote excede o máximo de %d itens", s.cfg.Batch.MaxItems),
			Code:  "REG007",
		})
		return
	}

	result, err := s.ingestor.Process(r.Context(), candidates)
	if err != nil {
		// A store failure mid-run: items accepted before it are durable,
		// so the counters still move before the error response.
		s.metrics.BatchAccepted.Add(float64(len(result.Accepted)))
		s.metrics.BatchRejected.Add(float64(len(result.Rejected)))
		s.respondError(w, r, err)
		return
	}

	s.metrics.BatchAccepted.Add(float64(len(result.Accepted)))
	s.metrics.BatchRejected.Add(float64(len(result.Rejected)))

	writeJSON(w, batchStatus(result), batchResponse{
		LoteID:     result.ID,
		Total:      len(result.Accepted) + len(result.Rejected),
		Aceitos:    len(result.Accepted),
		Rejeitados: len(result.Rejected),
		Falhas:     result.Rejected,
	})
}

// batchStatus picks the HTTP status for a completed batch run.
func batchStatus(result clientes.BatchResult) int {
	switch {
	case len(result.Rejected) == 0:
		return http.StatusCreated
	case len(result.Accepted) == 0:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusMultiStatus
	}
}
