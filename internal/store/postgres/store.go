// Package postgres implements the clientes.Store contract on PostgreSQL via
// pgx. This is the driver the HTTP server runs on; connection pooling and
// durability come from pgxpool and the database itself.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pvbarbosa/cadastro/internal/clientes"
)

const schema = `
CREATE TABLE IF NOT EXISTS clientes (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    nome TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    telefone TEXT NOT NULL DEFAULT '',
    cpf TEXT NOT NULL DEFAULT '',
    data_nascimento TEXT NOT NULL DEFAULT ''
)`

// Store persists client records in a single Postgres table. Every method is
// one statement against the pool, committed before it returns.
type Store struct {
	pool *pgxpool.Pool
}

var _ clientes.Store = (*Store)(nil)

// New wraps an existing pool and ensures the clientes table exists.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create clientes table: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Create inserts a new record and returns the identity-assigned id.
func (s *Store) Create(ctx context.Context, c clientes.Cliente) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO clientes (nome, email, telefone, cpf, data_nascimento)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		c.Nome, c.Email, c.Telefone, c.CPF, c.DataNascimento,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert cliente: %w", err)
	}
	return id, nil
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]clientes.Cliente, error) {
	rows, err := s.pool.Query(ctx,
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
	err := s.pool.QueryRow(ctx,
		`SELECT id, nome, email, telefone, cpf, data_nascimento FROM clientes WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Nome, &c.Email, &c.Telefone, &c.CPF, &c.DataNascimento)
	if errors.Is(err, pgx.ErrNoRows) {
		return clientes.Cliente{}, clientes.ErrNotFound
	}
	if err != nil {
		return clientes.Cliente{}, fmt.Errorf("get cliente %d: %w", id, err)
	}
	return c, nil
}

// SearchByName returns records whose name contains nomeParte,
// case-insensitively (ILIKE).
func (s *Store) SearchByName(ctx context.Context, nomeParte string) ([]clientes.Cliente, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, nome, email, telefone, cpf, data_nascimento
		 FROM clientes WHERE nome ILIKE '%' || $1 || '%' ORDER BY id`,
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
	tag, err := s.pool.Exec(ctx,
		`UPDATE clientes
		 SET nome = $1, email = $2, telefone = $3, cpf = $4, data_nascimento = $5
		 WHERE id = $6`,
		c.Nome, c.Email, c.Telefone, c.CPF, c.DataNascimento, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update cliente %d: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return clientes.ErrNotFound
	}
	return nil
}

// Delete removes a record by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return clientes.ErrNotFound
	}
	return nil
}

func collect(rows pgx.Rows) ([]clientes.Cliente, error) {
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
