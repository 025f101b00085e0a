// Package cli implements the terminal surface of the registry: an
// interactive menu over a local SQLite database and a bulk import command
// for JSON and CSV files. Both go through the same validation and store
// contract as the web server.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pvbarbosa/cadastro/internal/clientes"
	"github.com/pvbarbosa/cadastro/internal/store/sqlite"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Database string
	Verbose  bool
}

// NewRootCommand creates the root command for the cadastro CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cadastro",
		Short: "Cadastro de clientes",
		Long: `Registro de clientes com validação de campos.

O menu interativo e o comando de importação operam sobre um banco SQLite
local; o mesmo conjunto de regras de validação vale para todas as
interfaces.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})
			slog.SetDefault(slog.New(handler))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "clientes.db", "caminho do banco SQLite")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "logs detalhados")

	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// openService opens the SQLite store at the configured path and wraps it in
// the record service. The caller owns the returned store's lifetime.
func openService(opts *RootOptions) (*clientes.Service, clientes.Store, error) {
	store, err := sqlite.Open(opts.Database)
	if err != nil {
		return nil, nil, err
	}
	return clientes.NewService(store), store, nil
}
