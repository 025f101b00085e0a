package clientes

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"not found", ErrNotFound, "REG001"},
		{"wrapped not found", fmt.Errorf("buscar: %w", ErrNotFound), "REG001"},
		{"malformed batch", ErrMalformedBatch, "REG002"},
		{"validation", &ValidationError{Erros: []string{ReasonNomeObrigatorio}}, "VAL001"},
		{"connection refused", errors.New("dial tcp: connection refused"), "DB001"},
		{"connection reset", errors.New("read: connection reset by peer"), "DB002"},
		{"sqlite locked", errors.New("database is locked (5) (SQLITE_BUSY)"), "DB003"},
		{"deadlock", errors.New("deadlock detected"), "DB003"},
		{"deadline", errors.New("context deadline exceeded"), "DB004"},
		{"timeout", errors.New("i/o timeout"), "DB004"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_ValidationCarriesReasons(t *testing.T) {
	err := &ValidationError{Erros: []string{ReasonNomeObrigatorio, ReasonCPFInvalido}}

	msg := MapError(err)
	if !strings.Contains(msg.Message, ReasonNomeObrigatorio) || !strings.Contains(msg.Message, ReasonCPFInvalido) {
		t.Errorf("Message = %q, want both reasons", msg.Message)
	}
}

func TestMapError_SentinelBeatsPattern(t *testing.T) {
	// A wrapped sentinel whose text also matches a pattern must resolve by
	// type, not by substring.
	err := fmt.Errorf("timeout while looking up: %w", ErrNotFound)
	if got := MapError(err); got.Code != "REG001" {
		t.Errorf("MapError() code = %q, want REG001", got.Code)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrNotFound)
	if !strings.Contains(got, "Cliente não encontrado") || !strings.Contains(got, "REG001") {
		t.Errorf("FormatUserError() = %q", got)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Erros: []string{ReasonNomeObrigatorio, ReasonDataInvalida}}
	want := "validação falhou: nome obrigatório; data inválida (dd/mm/aaaa)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
