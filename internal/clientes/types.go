package clientes

import "strings"

// Cliente is a persisted client record. The ID is assigned by the store on
// creation and never changes; every other field is replaced wholesale on
// update.
//
// Optional fields use the empty string for "not provided". JSON tags match
// the names the original API exposed.
type Cliente struct {
	ID             int64  `json:"id"`
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"data_nascimento"`
}

// Field keys accepted in batch candidates.
const (
	FieldNome           = "nome"
	FieldEmail          = "email"
	FieldTelefone       = "telefone"
	FieldCPF            = "cpf"
	FieldDataNascimento = "data_nascimento"
)

// Candidate is an unvalidated input record submitted for creation.
// Missing keys are treated as empty strings.
type Candidate map[string]string

// Get returns the trimmed value for a field key, or "" if absent.
func (c Candidate) Get(key string) string {
	return strings.TrimSpace(c[key])
}

// Input carries the five client fields for create and update operations.
// Callers are expected to pass already-extracted strings; Trimmed normalizes
// surrounding whitespace the same way the batch ingestor does.
type Input struct {
	Nome           string
	Email          string
	Telefone       string
	CPF            string
	DataNascimento string
}

// Trimmed returns a copy of the input with surrounding whitespace removed
// from every field.
func (in Input) Trimmed() Input {
	return Input{
		Nome:           strings.TrimSpace(in.Nome),
		Email:          strings.TrimSpace(in.Email),
		Telefone:       strings.TrimSpace(in.Telefone),
		CPF:            strings.TrimSpace(in.CPF),
		DataNascimento: strings.TrimSpace(in.DataNascimento),
	}
}

// InputFromCandidate extracts and trims the five known fields from a
// candidate payload.
func InputFromCandidate(c Candidate) Input {
	return Input{
		Nome:           c.Get(FieldNome),
		Email:          c.Get(FieldEmail),
		Telefone:       c.Get(FieldTelefone),
		CPF:            c.Get(FieldCPF),
		DataNascimento: c.Get(FieldDataNascimento),
	}
}
