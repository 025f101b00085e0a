package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pvbarbosa/cadastro/internal/clientes"
)

// NewImportCommand creates the bulk import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <arquivo>",
		Short: "Importa clientes em lote de um arquivo JSON ou CSV",
		Long: `Importa um lote de clientes para o banco SQLite local.

Formatos aceitos:
  .json  array de objetos com os campos nome, email, telefone, cpf
         e data_nascimento
  .csv   primeira linha com os nomes das colunas; colunas desconhecidas
         são ignoradas

Cada item passa pela mesma validação do cadastro individual. Itens
rejeitados não impedem os demais; o relatório final lista cada rejeição
com seus motivos.

Exemplo:
  cadastro import --db ./clientes.db ./clientes.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rootOpts, args[0])
		},
	}
}

func runImport(cmd *cobra.Command, rootOpts *RootOptions, path string) error {
	_, store, err := openService(rootOpts)
	if err != nil {
		return fmt.Errorf("abrir banco: %w", err)
	}
	defer store.Close()

	ingestor := clientes.NewIngestor(store)
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	var result clientes.BatchResult

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		payload, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("ler arquivo: %w", readErr)
		}
		result, err = ingestor.ProcessJSON(ctx, payload)
	case ".csv":
		candidates, readErr := readCSVCandidates(path)
		if readErr != nil {
			return fmt.Errorf("ler arquivo: %w", readErr)
		}
		result, err = ingestor.Process(ctx, candidates)
	default:
		return fmt.Errorf("formato não suportado: %s (use .json ou .csv)", filepath.Ext(path))
	}

	if err != nil {
		// A store failure mid-run still leaves the earlier items persisted;
		// report what completed before surfacing the failure.
		if result.ID != "" {
			printReport(out, result)
		}
		return fmt.Errorf("%s", clientes.FormatUserError(err))
	}

	printReport(out, result)
	return nil
}

// printReport writes the batch partition summary and one line per rejection.
func printReport(out io.Writer, result clientes.BatchResult) {
	total := len(result.Accepted) + len(result.Rejected)
	fmt.Fprintf(out, "Lote %s: %d itens, %d aceitos, %d rejeitados\n",
		result.ID, total, len(result.Accepted), len(result.Rejected))

	for _, rej := range result.Rejected {
		nome := rej.Cliente.Get(clientes.FieldNome)
		if nome == "" {
			nome = "(sem nome)"
		}
		fmt.Fprintf(out, "  índice %d (%s): %s\n",
			rej.Indice, nome, strings.Join(rej.Erros, "; "))
	}
}

// readCSVCandidates parses a CSV file into candidate records. The first row
// names the columns; only the five known fields are kept, matched
// case-insensitively. Ragged rows are tolerated, missing cells stay empty.
func readCSVCandidates(path string) ([]clientes.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(newImportReader(f))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("ler cabeçalho: %w", err)
	}

	known := map[string]string{
		clientes.FieldNome:           clientes.FieldNome,
		clientes.FieldEmail:          clientes.FieldEmail,
		clientes.FieldTelefone:       clientes.FieldTelefone,
		clientes.FieldCPF:            clientes.FieldCPF,
		clientes.FieldDataNascimento: clientes.FieldDataNascimento,
	}

	// Column position -> candidate key, for recognized columns only.
	cols := make(map[int]string, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if field, ok := known[key]; ok {
			cols[i] = field
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("nenhuma coluna reconhecida no cabeçalho (esperado: nome, email, telefone, cpf, data_nascimento)")
	}

	var candidates []clientes.Candidate
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ler linha: %w", err)
		}

		if emptyRow(row) {
			continue
		}

		c := clientes.Candidate{}
		for i, field := range cols {
			if i < len(row) {
				c[field] = row[i]
			}
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
