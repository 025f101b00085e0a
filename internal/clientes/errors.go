package clientes

// errors.go maps technical errors to user-facing messages with support
// codes. Patterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come before general ones. Users can
// quote the code to support staff for faster diagnosis.
//
// Codes:
//
//	REG001 - record not found
//	REG002 - malformed batch payload
//	VAL001 - field validation failed
//	DB001  - unable to connect to the store
//	DB002  - store connection interrupted
//	DB003  - store busy or locked
//	DB004  - operation timed out
//	ERR000 - fallback for unexpected errors

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Não foi possível conectar ao banco de dados",
			Action:  "Tente novamente em alguns instantes",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "A conexão com o banco de dados foi interrompida",
			Action:  "Tente novamente",
			Code:    "DB002",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "O banco de dados está ocupado",
			Action:  "Tente novamente em alguns instantes",
			Code:    "DB003",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "O banco de dados está ocupado com operações conflitantes",
			Action:  "Tente novamente",
			Code:    "DB003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "A operação demorou demais e foi cancelada",
			Action:  "Tente novamente ou envie um lote menor",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "A operação demorou demais e foi cancelada",
			Action:  "Tente novamente ou envie um lote menor",
			Code:    "DB004",
		},
	},
}

// defaultMessage is the fallback when no pattern matches (ERR000). Support
// staff should check the logs for the original technical error.
var defaultMessage = UserMessage{
	Message: "Ocorreu um erro inesperado",
	Action:  "Tente novamente ou contate o suporte",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Typed
// sentinels are checked first, then the pattern table; unknown errors fall
// back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return UserMessage{
			Message: "Cliente não encontrado",
			Action:  "Confira o ID informado",
			Code:    "REG001",
		}
	case errors.Is(err, ErrMalformedBatch):
		return UserMessage{
			Message: "O payload do lote deve ser uma lista de clientes",
			Action:  "Envie um array JSON de objetos de cliente",
			Code:    "REG002",
		}
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return UserMessage{
			Message: strings.Join(verr.Erros, "; "),
			Action:  "Corrija os campos indicados e tente novamente",
			Code:    "VAL001",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Código: XXX). Action". The terminal surfaces use this directly.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}
