package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/clientbook"
	"github.com/google/uuid"
)

const tsLayout = time.RFC3339Nano

// CreateClient stores a new client with a fresh immutable ID.
// It returns ErrClientExists if the name is already used.
func (s *Store) CreateClient(ctx context.Context, name string) (clientbook.Client, error) {
	name, err := clientbook.ValidateClientName(name)
	if err != nil {
		return clientbook.Client{}, err
	}
	c := clientbook.Client{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO clients (client_id, client_name, created_at) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.CreatedAt.Format(tsLayout))
	if isUniqueViolation(err) {
		return clientbook.Client{}, fmt.Errorf("client %q: %w", name, ErrClientExists)
	}
	if err != nil {
		return clientbook.Client{}, fmt.Errorf("failed to create client %q: %w", name, err)
	}
	s.log.Info().Str("client", c.ID).Str("name", c.Name).Msg("client created")
	return c, nil
}

// Client returns the client with the given ID.
func (s *Store) Client(ctx context.Context, id string) (clientbook.Client, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT client_id, client_name, created_at FROM clients WHERE client_id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clientbook.Client{}, fmt.Errorf("client %q: %w", id, ErrNotFound)
	}
	return c, err
}

// ClientByName returns the client with the given display name.
func (s *Store) ClientByName(ctx context.Context, name string) (clientbook.Client, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT client_id, client_name, created_at FROM clients WHERE client_name = ?`, name)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clientbook.Client{}, fmt.Errorf("client %q: %w", name, ErrNotFound)
	}
	return c, err
}

// ResolveClient finds a client by ID, or else by name.
func (s *Store) ResolveClient(ctx context.Context, ref string) (clientbook.Client, error) {
	c, err := s.Client(ctx, ref)
	if errors.Is(err, ErrNotFound) {
		return s.ClientByName(ctx, ref)
	}
	return c, err
}

// ListClients returns every client ordered by name.
func (s *Store) ListClients(ctx context.Context) ([]clientbook.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT client_id, client_name, created_at FROM clients ORDER BY client_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []clientbook.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// RenameClient changes the display name of a client. Transactions reference
// the client by ID so they are left untouched.
func (s *Store) RenameClient(ctx context.Context, id, name string) (clientbook.Client, error) {
	name, err := clientbook.ValidateClientName(name)
	if err != nil {
		return clientbook.Client{}, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE clients SET client_name = ? WHERE client_id = ?`, name, id)
	if isUniqueViolation(err) {
		return clientbook.Client{}, fmt.Errorf("client %q: %w", name, ErrClientExists)
	}
	if err != nil {
		return clientbook.Client{}, fmt.Errorf("failed to rename client %q: %w", id, err)
	}
	if err := expectOneRow(res, "client", id); err != nil {
		return clientbook.Client{}, err
	}
	s.log.Info().Str("client", id).Str("name", name).Msg("client renamed")
	return s.Client(ctx, id)
}

// DeleteClient deletes a client and all its transactions.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE client_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client %q: %w", id, err)
	}
	if err := expectOneRow(res, "client", id); err != nil {
		return err
	}
	s.log.Info().Str("client", id).Msg("client deleted")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (clientbook.Client, error) {
	var c clientbook.Client
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &createdAt); err != nil {
		return clientbook.Client{}, err
	}
	t, err := time.Parse(tsLayout, createdAt)
	if err != nil {
		return clientbook.Client{}, fmt.Errorf("client %q has an invalid creation time %q: %w", c.ID, createdAt, err)
	}
	c.CreatedAt = t
	return c, nil
}

func expectOneRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", what, id, ErrNotFound)
	}
	return nil
}
