package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pvbarbosa/cadastro/internal/clientes"
)

// NewMenuCommand creates the interactive menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Menu interativo de cadastro",
		Long: `Abre o menu interativo sobre o banco SQLite local.

Exemplo:
  cadastro menu --db ./clientes.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, store, err := openService(rootOpts)
			if err != nil {
				return fmt.Errorf("abrir banco: %w", err)
			}
			defer store.Close()

			m := &menu{
				service: service,
				in:      bufio.NewScanner(cmd.InOrStdin()),
				out:     cmd.OutOrStdout(),
			}
			return m.run(cmd.Context())
		},
	}
}

// menu drives the interactive loop. All reads come from a single scanner so
// the loop works the same over a pipe and a TTY.
type menu struct {
	service *clientes.Service
	in      *bufio.Scanner
	out     io.Writer
}

func (m *menu) run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, `
=== Cadastro de Clientes ===
1 - Cadastrar cliente
2 - Listar clientes
3 - Buscar por ID
4 - Buscar por nome
5 - Atualizar cliente
6 - Excluir cliente
0 - Sair
Opção: `)

		opcao, ok := m.readLine()
		if !ok {
			return nil
		}

		switch strings.TrimSpace(opcao) {
		case "1":
			m.cadastrar(ctx)
		case "2":
			m.listar(ctx)
		case "3":
			m.buscarPorID(ctx)
		case "4":
			m.buscarPorNome(ctx)
		case "5":
			m.atualizar(ctx)
		case "6":
			m.excluir(ctx)
		case "0":
			fmt.Fprintln(m.out, "Até logo!")
			return nil
		default:
			fmt.Fprintln(m.out, "Opção inválida, tente novamente.")
		}
	}
}

// readLine returns the next input line, or ok=false on EOF.
func (m *menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// prompt prints a label and reads one line.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	return m.readLine()
}

// promptID re-prompts until a positive integer is entered.
func (m *menu) promptID(label string) (int64, bool) {
	for {
		raw, ok := m.prompt(label)
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err == nil && id > 0 {
			return id, true
		}
		fmt.Fprintln(m.out, "ID inválido, informe um número.")
	}
}

func (m *menu) cadastrar(ctx context.Context) {
	in, ok := m.readInput(clientes.Input{})
	if !ok {
		return
	}

	c, err := m.service.Create(ctx, in)
	if err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintf(m.out, "Cliente cadastrado com ID %d.\n", c.ID)
}

func (m *menu) listar(ctx context.Context) {
	lista, err := m.service.List(ctx)
	if err != nil {
		m.printErr(err)
		return
	}
	m.printClientes(lista)
}

func (m *menu) buscarPorID(ctx context.Context) {
	id, ok := m.promptID("ID do cliente: ")
	if !ok {
		return
	}

	c, err := m.service.Get(ctx, id)
	if err != nil {
		m.printErr(err)
		return
	}
	m.printClientes([]clientes.Cliente{c})
}

func (m *menu) buscarPorNome(ctx context.Context) {
	nome, ok := m.prompt("Nome (ou parte): ")
	if !ok {
		return
	}
	nome = strings.TrimSpace(nome)
	if nome == "" {
		fmt.Fprintln(m.out, "Informe ao menos parte do nome.")
		return
	}

	lista, err := m.service.Search(ctx, nome)
	if err != nil {
		m.printErr(err)
		return
	}
	m.printClientes(lista)
}

// atualizar merges blank answers with the stored record before calling the
// service: pressing Enter keeps the current value. The merge lives here, at
// the surface; the service contract is full-replace.
func (m *menu) atualizar(ctx context.Context) {
	id, ok := m.promptID("ID do cliente: ")
	if !ok {
		return
	}

	atual, err := m.service.Get(ctx, id)
	if err != nil {
		m.printErr(err)
		return
	}

	fmt.Fprintln(m.out, "Deixe em branco para manter o valor atual.")
	in, ok := m.readInput(clientes.Input{
		Nome:           atual.Nome,
		Email:          atual.Email,
		Telefone:       atual.Telefone,
		CPF:            atual.CPF,
		DataNascimento: atual.DataNascimento,
	})
	if !ok {
		return
	}

	if _, err := m.service.Update(ctx, id, in); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintln(m.out, "Cliente atualizado.")
}

func (m *menu) excluir(ctx context.Context) {
	id, ok := m.promptID("ID do cliente: ")
	if !ok {
		return
	}

	c, err := m.service.Get(ctx, id)
	if err != nil {
		m.printErr(err)
		return
	}

	resp, ok := m.prompt(fmt.Sprintf("Excluir %s (ID %d)? [s/N]: ", c.Nome, c.ID))
	if !ok {
		return
	}
	if !strings.EqualFold(strings.TrimSpace(resp), "s") {
		fmt.Fprintln(m.out, "Exclusão cancelada.")
		return
	}

	if err := m.service.Delete(ctx, id); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintln(m.out, "Cliente excluído.")
}

// readInput collects the five fields, using atual's values for blank
// answers. For a new record atual is the zero Input, so blank stays blank.
func (m *menu) readInput(atual clientes.Input) (clientes.Input, bool) {
	campos := []struct {
		label string
		dest  *string
	}{
		{"Nome", &atual.Nome},
		{"Email", &atual.Email},
		{"Telefone", &atual.Telefone},
		{"CPF", &atual.CPF},
		{"Data de nascimento (dd/mm/aaaa)", &atual.DataNascimento},
	}

	for _, campo := range campos {
		label := campo.label
		if *campo.dest != "" {
			label = fmt.Sprintf("%s [%s]", label, *campo.dest)
		}
		resp, ok := m.prompt(label + ": ")
		if !ok {
			return clientes.Input{}, false
		}
		if resp = strings.TrimSpace(resp); resp != "" {
			*campo.dest = resp
		}
	}
	return atual, true
}

func (m *menu) printClientes(lista []clientes.Cliente) {
	if len(lista) == 0 {
		fmt.Fprintln(m.out, "Nenhum cliente encontrado.")
		return
	}
	for _, c := range lista {
		fmt.Fprintf(m.out, "[%d] %s | email: %s | tel: %s | cpf: %s | nasc: %s\n",
			c.ID, c.Nome, valueOr(c.Email), valueOr(c.Telefone),
			valueOr(c.CPF), valueOr(c.DataNascimento))
	}
}

func valueOr(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printErr renders validation failures as a field list and everything else
// via the shared user-message mapping.
func (m *menu) printErr(err error) {
	var verr *clientes.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(m.out, "Dados inválidos:")
		for _, e := range verr.Erros {
			fmt.Fprintf(m.out, "  - %s\n", e)
		}
		return
	}
	fmt.Fprintln(m.out, clientes.FormatUserError(err))
}
