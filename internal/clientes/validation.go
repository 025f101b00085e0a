package clientes

// validation.go provides field-level validation for client records.
//
// Every check is total (never fails, only answers yes/no) and independent of
// the others. Validate runs all four checks without short-circuiting so a
// candidate's full reason list can be collected in a single pass, which is
// what the batch ingestor reports per rejected item.

import (
	"regexp"
	"strings"
	"time"
)

// Validation failure reasons, in the exact wording the registry has always
// reported to users.
const (
	ReasonNomeObrigatorio = "nome obrigatório"
	ReasonEmailInvalido   = "email inválido"
	ReasonCPFInvalido     = "cpf inválido (11 dígitos)"
	ReasonDataInvalida    = "data inválida (dd/mm/aaaa)"
)

var (
	// Local part, "@", domain, ".", tld-like suffix; each segment restricted
	// to word characters, dots and hyphens.
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

	nonDigits = regexp.MustCompile(`\D`)
)

// ValidateNome reports whether the name is acceptable. Names are required;
// whitespace-only input counts as empty. No other format constraint applies.
func ValidateNome(nome string) bool {
	return strings.TrimSpace(nome) != ""
}

// ValidateEmail reports whether the email is acceptable. Email is optional:
// empty input passes. Non-empty input must match the basic address shape.
func ValidateEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// ValidateCPF reports whether the CPF is acceptable. CPF is optional: empty
// input passes. Non-empty input must contain exactly 11 digits after
// stripping punctuation. Verification digits are not checked.
func ValidateCPF(cpf string) bool {
	if cpf == "" {
		return true
	}
	return len(nonDigits.ReplaceAllString(cpf, "")) == 11
}

// ValidateDataNascimento reports whether the birth date is acceptable. The
// field is optional: empty input passes. Non-empty input must be a calendar
// valid dd/mm/aaaa date with two-digit day and month and four-digit year.
func ValidateDataNascimento(data string) bool {
	if data == "" {
		return true
	}
	_, err := time.Parse("02/01/2006", data)
	return err == nil
}

// Validate runs all four field checks against the input and returns every
// failure reason in a fixed order. A nil result means the input is
// acceptable. Fields are checked as given; callers normalize whitespace
// first (see Input.Trimmed).
func Validate(in Input) []string {
	var erros []string
	if !ValidateNome(in.Nome) {
		erros = append(erros, ReasonNomeObrigatorio)
	}
	if !ValidateEmail(in.Email) {
		erros = append(erros, ReasonEmailInvalido)
	}
	if !ValidateCPF(in.CPF) {
		erros = append(erros, ReasonCPFInvalido)
	}
	if !ValidateDataNascimento(in.DataNascimento) {
		erros = append(erros, ReasonDataInvalida)
	}
	return erros
}
