// Package templates holds the server-rendered HTML components for the
// registry UI. Components implement templ.Component so handlers can compose
// and render them uniformly.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/pvbarbosa/cadastro/internal/clientes"
)

// Layout wraps a body component in the shared page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - Cadastro de Clientes</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header><h1><a href="/">Cadastro de Clientes</a></h1></header>
<main>
`, html.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

// ErrorAlert renders a user-facing error box with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="alert alert-error"><p>%s</p><p>%s</p><p class="code">Código: %s</p></div>`,
			html.EscapeString(message), html.EscapeString(action), html.EscapeString(code))
		return err
	})
}

// ValidationAlert renders the field-level reason list for a rejected form.
func ValidationAlert(erros []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(erros) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<div class="alert alert-error"><ul>`); err != nil {
			return err
		}
		for _, e := range erros {
			if _, err := fmt.Fprintf(w, "<li>%s</li>", html.EscapeString(e)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul></div>")
		return err
	})
}

// ClienteList renders the client table plus the name search box. busca is
// the current search term, echoed back into the input.
func ClienteList(lista []clientes.Cliente, busca string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section>
<form method="get" action="/" class="busca">
<input type="text" name="nome" placeholder="Buscar por nome" value="%s">
<button type="submit">Buscar</button>
</form>
<p><a href="/clientes/novo" class="btn">Novo cliente</a></p>
`, html.EscapeString(busca)); err != nil {
			return err
		}

		if len(lista) == 0 {
			if _, err := io.WriteString(w, "<p>Nenhum cliente cadastrado.</p>\n</section>\n"); err != nil {
				return err
			}
			return nil
		}

		if _, err := io.WriteString(w, `<table>
<thead><tr><th>ID</th><th>Nome</th><th>Email</th><th>Telefone</th><th>CPF</th><th>Nascimento</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, c := range lista {
			if _, err := fmt.Fprintf(w, `<tr>
<td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>
<td><a href="/clientes/%d/editar">Editar</a>
<form method="post" action="/clientes/%d/excluir" class="inline" onsubmit="return confirm('Excluir cliente %s?')"><button type="submit">Excluir</button></form></td>
</tr>
`, c.ID,
				html.EscapeString(c.Nome), html.EscapeString(c.Email),
				html.EscapeString(c.Telefone), html.EscapeString(c.CPF),
				html.EscapeString(c.DataNascimento),
				c.ID, c.ID, html.EscapeString(c.Nome)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n</section>\n")
		return err
	})
}

// ClienteForm renders the create/edit form. action is the POST target; when
// editing, c carries the current values to pre-fill.
func ClienteForm(action string, c clientes.Cliente, erros []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ValidationAlert(erros).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="%s" class="cliente-form">
<label>Nome <input type="text" name="nome" value="%s" required></label>
<label>Email <input type="text" name="email" value="%s"></label>
<label>Telefone <input type="text" name="telefone" value="%s"></label>
<label>CPF <input type="text" name="cpf" value="%s" placeholder="somente números ou com máscara"></label>
<label>Data de nascimento <input type="text" name="data_nascimento" value="%s" placeholder="dd/mm/aaaa"></label>
<button type="submit">Salvar</button>
<a href="/">Cancelar</a>
</form>
`, html.EscapeString(action),
			html.EscapeString(c.Nome), html.EscapeString(c.Email),
			html.EscapeString(c.Telefone), html.EscapeString(c.CPF),
			html.EscapeString(c.DataNascimento))
		return err
	})
}
