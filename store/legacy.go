package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/clientbook"
	"github.com/etnz/clientbook/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportStats counts what ImportLegacy did.
type ImportStats struct {
	Clients      int // Clients created.
	Reused       int // Clients already present by name.
	Transactions int // Transactions imported.
}

// ImportLegacy copies the clients and transactions of a legacy database,
// where transactions reference their client by name, into s.
//
// Legacy clients are matched by name: an existing client with the same name
// receives the transactions. A transaction naming an unknown client creates
// it. The import is atomic.
func (s *Store) ImportLegacy(ctx context.Context, legacyPath string) (ImportStats, error) {
	legacy, err := sql.Open("sqlite", "file:"+legacyPath+"?mode=ro")
	if err != nil {
		return ImportStats{}, fmt.Errorf("failed to open legacy database %s: %w", legacyPath, err)
	}
	defer legacy.Close()

	names, err := legacyClientNames(ctx, legacy)
	if err != nil {
		return ImportStats{}, err
	}
	txs, err := legacyTransactions(ctx, legacy)
	if err != nil {
		return ImportStats{}, err
	}

	var stats ImportStats
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		ids := make(map[string]string)
		resolve := func(name string) (string, error) {
			if id, ok := ids[name]; ok {
				return id, nil
			}
			id, created, err := ensureClient(ctx, tx, name)
			if err != nil {
				return "", err
			}
			if created {
				stats.Clients++
			} else {
				stats.Reused++
			}
			ids[name] = id
			return id, nil
		}

		for _, name := range names {
			if _, err := resolve(name); err != nil {
				return err
			}
		}
		for _, lt := range txs {
			id, err := resolve(lt.client)
			if err != nil {
				return err
			}
			lt.tx.ClientID = id
			v, err := lt.tx.Validate()
			if err != nil {
				return fmt.Errorf("legacy transaction %d: %w", lt.id, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO transactions (client_id, stock_name, transaction_type, quantity, price, date)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				v.ClientID, v.Stock, v.Type, v.Quantity, v.Price, v.Date); err != nil {
				return fmt.Errorf("failed to import legacy transaction %d: %w", lt.id, err)
			}
			stats.Transactions++
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}
	s.log.Info().Str("from", legacyPath).Int("clients", stats.Clients).Int("reused", stats.Reused).
		Int("transactions", stats.Transactions).Msg("legacy database imported")
	return stats, nil
}

func ensureClient(ctx context.Context, tx *sql.Tx, name string) (id string, created bool, err error) {
	name, err = clientbook.ValidateClientName(name)
	if err != nil {
		return "", false, err
	}
	err = tx.QueryRowContext(ctx, `SELECT client_id FROM clients WHERE client_name = ?`, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", false, fmt.Errorf("failed to look up client %q: %w", name, err)
	}
	id = uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO clients (client_id, client_name, created_at) VALUES (?, ?, ?)`,
		id, name, time.Now().UTC().Format(tsLayout)); err != nil {
		return "", false, fmt.Errorf("failed to create client %q: %w", name, err)
	}
	return id, true, nil
}

func legacyClientNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT client_name FROM clients ORDER BY client_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy clients: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to read legacy client: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type legacyTx struct {
	id     int64
	client string
	tx     clientbook.Transaction
}

func legacyTransactions(ctx context.Context, db *sql.DB) ([]legacyTx, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT transaction_id, client_name, stock_name, transaction_type, quantity, price, date
		 FROM transactions ORDER BY transaction_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy transactions: %w", err)
	}
	defer rows.Close()

	var txs []legacyTx
	for rows.Next() {
		var (
			lt       legacyTx
			kind     string
			quantity int64
			price    float64
			on       string
		)
		if err := rows.Scan(&lt.id, &lt.client, &lt.tx.Stock, &kind, &quantity, &price, &on); err != nil {
			return nil, fmt.Errorf("failed to read legacy transaction: %w", err)
		}
		if lt.tx.Type, err = clientbook.ParseTransactionType(kind); err != nil {
			return nil, fmt.Errorf("legacy transaction %d: %w", lt.id, err)
		}
		if lt.tx.Date, err = date.Parse(on); err != nil {
			return nil, fmt.Errorf("legacy transaction %d: %w", lt.id, err)
		}
		lt.tx.Quantity = clientbook.Q(quantity)
		// prices were stored as REAL, keep their shortest decimal form.
		lt.tx.Price = clientbook.M(decimal.NewFromFloat(price))
		txs = append(txs, lt)
	}
	return txs, rows.Err()
}
