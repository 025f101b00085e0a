package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runMenu executes the menu command against a temp database, feeding script
// as stdin, and returns everything printed.
func runMenu(t *testing.T, dbPath, script string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"menu", "--db", dbPath})
	cmd.SetIn(strings.NewReader(script))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("menu error = %v, output:\n%s", err, out.String())
	}
	return out.String()
}

func TestMenu_CadastrarEListar(t *testing.T) {
	db := filepath.Join(t.TempDir(), "clientes.db")

	script := strings.Join([]string{
		"1",                // cadastrar
		"Ana",              // nome
		"ana@example.com",  // email
		"",                 // telefone
		"111.222.333-44",   // cpf
		"01/01/1990",       // data
		"2",                // listar
		"0",                // sair
	}, "\n") + "\n"

	out := runMenu(t, db, script)

	if !strings.Contains(out, "Cliente cadastrado com ID 1") {
		t.Errorf("missing creation confirmation:\n%s", out)
	}
	if !strings.Contains(out, "[1] Ana") || !strings.Contains(out, "ana@example.com") {
		t.Errorf("listing is missing the record:\n%s", out)
	}
	if !strings.Contains(out, "Até logo!") {
		t.Errorf("missing exit message:\n%s", out)
	}
}

func TestMenu_CadastrarInvalido(t *testing.T) {
	db := filepath.Join(t.TempDir(), "clientes.db")

	script := strings.Join([]string{
		"1",   // cadastrar
		"",    // nome vazio
		"x@y", // email inválido
		"",    // telefone
		"",    // cpf
		"",    // data
		"2",   // listar
		"0",
	}, "\n") + "\n"

	out := runMenu(t, db, script)

	if !strings.Contains(out, "nome obrigatório") || !strings.Contains(out, "email inválido") {
		t.Errorf("missing validation reasons:\n%s", out)
	}
	if !strings.Contains(out, "Nenhum cliente encontrado.") {
		t.Errorf("rejected input reached the store:\n%s", out)
	}
}

func TestMenu_AtualizarMantemCampoEmBranco(t *testing.T) {
	db := filepath.Join(t.TempDir(), "clientes.db")

	script := strings.Join([]string{
		"1", "Ana", "ana@example.com", "", "", "", // cadastrar
		"5", "1", // atualizar ID 1
		"Ana Paula", "", "", "", "", // só o nome muda
		"3", "1", // buscar por ID
		"0",
	}, "\n") + "\n"

	out := runMenu(t, db, script)

	if !strings.Contains(out, "Cliente atualizado.") {
		t.Errorf("missing update confirmation:\n%s", out)
	}
	if !strings.Contains(out, "[1] Ana Paula") {
		t.Errorf("name was not updated:\n%s", out)
	}
	if !strings.Contains(out, "ana@example.com") {
		t.Errorf("blank answer should keep the stored email:\n%s", out)
	}
}

func TestMenu_ExcluirComConfirmacao(t *testing.T) {
	db := filepath.Join(t.TempDir(), "clientes.db")

	script := strings.Join([]string{
		"1", "Ana", "", "", "", "", // cadastrar
		"6", "1", "n", // excluir, recusar
		"6", "1", "s", // excluir, confirmar
		"2", // listar
		"0",
	}, "\n") + "\n"

	out := runMenu(t, db, script)

	if !strings.Contains(out, "Exclusão cancelada.") {
		t.Errorf("missing cancel message:\n%s", out)
	}
	if !strings.Contains(out, "Cliente excluído.") {
		t.Errorf("missing delete confirmation:\n%s", out)
	}
	if !strings.Contains(out, "Nenhum cliente encontrado.") {
		t.Errorf("record survived deletion:\n%s", out)
	}
}

func TestMenu_IDInvalidoRepete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "clientes.db")

	script := strings.Join([]string{
		"3",     // buscar por ID
		"abc",   // inválido
		"-2",    // inválido
		"7",     // válido mas inexistente
		"0",
	}, "\n") + "\n"

	out := runMenu(t, db, script)

	if strings.Count(out, "ID inválido, informe um número.") != 2 {
		t.Errorf("expected two re-prompts:\n%s", out)
	}
	if !strings.Contains(out, "Cliente não encontrado") {
		t.Errorf("missing not-found message:\n%s", out)
	}
}

func TestMenu_OpcaoInvalida(t *testing.T) {
	db := filepath.Join(t.TempDir(), "clientes.db")

	out := runMenu(t, db, "9\n0\n")
	if !strings.Contains(out, "Opção inválida, tente novamente.") {
		t.Errorf("missing invalid option message:\n%s", out)
	}
}
