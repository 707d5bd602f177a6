package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/clientbook"
	"github.com/etnz/clientbook/date"
)

// Filter narrows a transaction listing. The zero Filter lists everything.
type Filter struct {
	Stock string                     // Stock only lists transactions of this ticker.
	Type  clientbook.TransactionType // Type only lists buys or sells; zero lists both.
	Range date.Range                 // Range only lists transactions in these dates.
	Limit int                        // Limit caps the number of rows; zero means no limit.
}

// where returns the sql condition and arguments of the filter.
func (f Filter) where(clientID string) (string, []any) {
	conds := []string{"client_id = ?"}
	args := []any{clientID}
	if stock := clientbook.NormalizeStock(f.Stock); stock != "" {
		conds = append(conds, "stock_name = ?")
		args = append(args, stock)
	}
	if f.Type != 0 {
		conds = append(conds, "transaction_type = ?")
		args = append(args, f.Type.String())
	}
	if !f.Range.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, f.Range.From.String())
	}
	if !f.Range.To.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, f.Range.To.String())
	}
	return strings.Join(conds, " AND "), args
}

const txColumns = `transaction_id, client_id, stock_name, transaction_type, quantity, price, date`

// AddTransaction validates and stores a new transaction, and returns it with
// its assigned ID.
func (s *Store) AddTransaction(ctx context.Context, tx clientbook.Transaction) (clientbook.Transaction, error) {
	tx, err := tx.Validate()
	if err != nil {
		return clientbook.Transaction{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (client_id, stock_name, transaction_type, quantity, price, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ClientID, tx.Stock, tx.Type, tx.Quantity, tx.Price, tx.Date)
	if isForeignKeyViolation(err) {
		return clientbook.Transaction{}, fmt.Errorf("client %q: %w", tx.ClientID, ErrNotFound)
	}
	if err != nil {
		return clientbook.Transaction{}, fmt.Errorf("failed to add transaction: %w", err)
	}
	if tx.ID, err = res.LastInsertId(); err != nil {
		return clientbook.Transaction{}, fmt.Errorf("failed to read transaction id: %w", err)
	}
	s.log.Info().Int64("id", tx.ID).Str("client", tx.ClientID).Str("stock", tx.Stock).
		Stringer("type", tx.Type).Msg("transaction added")
	return tx, nil
}

// Transaction returns the transaction with the given ID.
func (s *Store) Transaction(ctx context.Context, id int64) (clientbook.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+txColumns+` FROM transactions WHERE transaction_id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clientbook.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return tx, err
}

// UpdateTransaction changes the price and quantity of a transaction.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, price clientbook.Money, quantity clientbook.Quantity) (clientbook.Transaction, error) {
	tx, err := s.Transaction(ctx, id)
	if err != nil {
		return clientbook.Transaction{}, err
	}
	tx.Price, tx.Quantity = price, quantity
	if tx, err = tx.Validate(); err != nil {
		return clientbook.Transaction{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET price = ?, quantity = ? WHERE transaction_id = ?`,
		tx.Price, tx.Quantity, id)
	if err != nil {
		return clientbook.Transaction{}, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	if err := expectOneRow(res, "transaction", fmt.Sprint(id)); err != nil {
		return clientbook.Transaction{}, err
	}
	s.log.Info().Int64("id", id).Msg("transaction updated")
	return tx, nil
}

// DeleteTransaction deletes a transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	if err := expectOneRow(res, "transaction", fmt.Sprint(id)); err != nil {
		return err
	}
	s.log.Info().Int64("id", id).Msg("transaction deleted")
	return nil
}

// ListTransactions returns the transactions of a client matching the
// filter, ordered by date then ID.
func (s *Store) ListTransactions(ctx context.Context, clientID string, f Filter) ([]clientbook.Transaction, error) {
	where, args := f.where(clientID)
	query := `SELECT ` + txColumns + ` FROM transactions WHERE ` + where + ` ORDER BY date, transaction_id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of %q: %w", clientID, err)
	}
	defer rows.Close()

	txs := []clientbook.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions of %q: %w", clientID, err)
	}
	return txs, nil
}

// ListStocksHeld returns the stocks a client bought at least once, sorted.
func (s *Store) ListStocksHeld(ctx context.Context, clientID string) ([]string, error) {
	return s.stocks(ctx,
		`SELECT DISTINCT stock_name FROM transactions
		 WHERE client_id = ? AND transaction_type = 'Buy' ORDER BY stock_name`, clientID)
}

// AllStocksHeld returns the stocks bought at least once by any client, sorted.
func (s *Store) AllStocksHeld(ctx context.Context) ([]string, error) {
	return s.stocks(ctx,
		`SELECT DISTINCT stock_name FROM transactions WHERE transaction_type = 'Buy' ORDER BY stock_name`)
}

func (s *Store) stocks(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	defer rows.Close()

	stocks := []string{}
	for rows.Next() {
		var stock string
		if err := rows.Scan(&stock); err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}

func scanTransaction(row scanner) (clientbook.Transaction, error) {
	var tx clientbook.Transaction
	err := row.Scan(&tx.ID, &tx.ClientID, &tx.Stock, &tx.Type, &tx.Quantity, &tx.Price, &tx.Date)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return clientbook.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}
	return tx, err
}
