// Package sqlite implements the clientes.Store contract on an embedded
// SQLite database. It backs the terminal tool and self-contained
// deployments; the pure-Go driver keeps the binary free of cgo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/pvbarbosa/cadastro/internal/clientes"
)

const schema = `
CREATE TABLE IF NOT EXISTS clientes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nome TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    telefone TEXT NOT NULL DEFAULT '',
    cpf TEXT NOT NULL DEFAULT '',
    data_nascimento TEXT NOT NULL DEFAULT ''
)`

// Store persists client records in a single SQLite table. Every method runs
// one autocommitted statement; SQLite's own locking serializes concurrent
// writers.
type Store struct {
	db *sql.DB
}

var _ clientes.Store = (*Store)(nil)

// Open opens (or creates) the database at path and ensures the clientes
// table exists. Use ":memory:" for a throwaway in-memory database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "clientes.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create clientes table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new record and returns the AUTOINCREMENT-assigned id.
func (s *Store) Create(ctx context.Context, c clientes.Cliente) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO clientes (nome, email, telefone, cpf, data_nascimento)
		 VALUES (?, ?, ?, ?, ?)`,
		c.Nome, c.Email, c.Telefone, c.CPF, c.DataNascimento,
	)
	if err != nil {
		return 0, fmt.Errorf("insert cliente: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]clientes.Cliente, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nome, email, telefone, cpf, data_nascimento FROM clientes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// GetByID returns the record with the given id, or clientes.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (clientes.Cliente, error) {
	var c clientes.Cliente
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nome, email, telefone, cpf, data_nascimento FROM clientes WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Nome, &c.Email, &c.Telefone, &c.CPF, &c.DataNascimento)
	if errors.Is(err, sql.ErrNoRows) {
		return clientes.Cliente{}, clientes.ErrNotFound
	}
	if err != nil {
		return clientes.Cliente{}, fmt.Errorf("get cliente %d: %w", id, err)
	}
	return c, nil
}

// SearchByName returns records whose name contains nomeParte. SQLite's LIKE
// is case-insensitive for ASCII.
func (s *Store) SearchByName(ctx context.Context, nomeParte string) ([]clientes.Cliente, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nome, email, telefone, cpf, data_nascimento
		 FROM clientes WHERE nome LIKE '%' || ? || '%' ORDER BY id`,
		nomeParte,
	)
	if err != nil {
		return nil, fmt.Errorf("search clientes: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// Update replaces every field of an existing record.
func (s *Store) Update(ctx context.Context, c clientes.Cliente) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE clientes
		 SET nome = ?, email = ?, telefone = ?, cpf = ?, data_nascimento = ?
		 WHERE id = ?`,
		c.Nome, c.Email, c.Telefone, c.CPF, c.DataNascimento, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update cliente %d: %w", c.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return clientes.ErrNotFound
	}
	return nil
}

// Delete removes a record by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clientes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cliente %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return clientes.ErrNotFound
	}
	return nil
}

func collect(rows *sql.Rows) ([]clientes.Cliente, error) {
	var out []clientes.Cliente
	for rows.Next() {
		var c clientes.Cliente
		if err := rows.Scan(&c.ID, &c.Nome, &c.Email, &c.Telefone, &c.CPF, &c.DataNascimento); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
