package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

// PostgresStore implements Store using PostgreSQL as the source of truth.
// All monetary values are stored as NUMERIC for exact decimal precision;
// event similarity uses the pg_trgm extension, installed by migrations.
type PostgresStore struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies file-based migrations from dir.
func (s *PostgresStore) Migrate(dir string) error {
	driver, err := migratepg.WithInstance(s.db, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Close closes the underlying pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

// Ping verifies connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// WithinTx runs fn inside one database transaction. fn's Tx must not
// outlive the call.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&postgresTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertBankroll(ctx context.Context, b *models.Bankroll) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bankrolls (id, user_id, bookmaker_name, currency, current_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.BookmakerName, b.Currency, b.CurrentBalance, b.CreatedAt, b.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (s *PostgresStore) ListBankrolls(ctx context.Context, userID uuid.UUID) ([]models.Bankroll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, bookmaker_name, currency, current_balance, created_at, updated_at
		FROM bankrolls
		WHERE user_id = $1
		ORDER BY bookmaker_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Bankroll
	for rows.Next() {
		var b models.Bankroll
		if err := rows.Scan(&b.ID, &b.UserID, &b.BookmakerName, &b.Currency, &b.CurrentBalance, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, status, total_stake, expected_return, actual_return, roi, description, created_at, updated_at
		FROM operations
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Operation
	index := make(map[uuid.UUID]int)
	ids := make([]string, 0)
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		index[op.ID] = len(out)
		ids = append(ids, op.ID.String())
		out = append(out, *op)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	legRows, err := s.db.QueryContext(ctx, legSelect+` WHERE operation_id = ANY($1) ORDER BY created_at, id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer legRows.Close()

	for legRows.Next() {
		leg, err := scanLeg(legRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[leg.OperationID]; ok {
			out[i].Legs = append(out[i].Legs, *leg)
		}
	}
	return out, legRows.Err()
}

// postgresTx implements Tx over one *sql.Tx.
type postgresTx struct {
	tx *sql.Tx
}

func (t *postgresTx) BankrollsForUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Bankroll, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	// Deterministic lock order avoids deadlock between concurrent units
	// touching the same bankrolls.
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, user_id, bookmaker_name, currency, current_balance, created_at, updated_at
		FROM bankrolls
		WHERE id = ANY($1) AND user_id = $2
		ORDER BY id
		FOR UPDATE`, pq.Array(strIDs), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Bankroll
	for rows.Next() {
		var b models.Bankroll
		if err := rows.Scan(&b.ID, &b.UserID, &b.BookmakerName, &b.Currency, &b.CurrentBalance, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (t *postgresTx) AdjustBankrollBalance(ctx context.Context, bankrollID uuid.UUID, delta decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE bankrolls
		SET current_balance = current_balance + $1, updated_at = now()
		WHERE id = $2`, delta, bankrollID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *postgresTx) OperationWithLegs(ctx context.Context, userID, operationID uuid.UUID) (*models.Operation, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT id, user_id, type, status, total_stake, expected_return, actual_return, roi, description, created_at, updated_at
		FROM operations
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, operationID, userID)

	op, err := scanOperation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := t.tx.QueryContext(ctx, legSelect+` WHERE operation_id = $1 ORDER BY created_at, id`, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		leg, err := scanLeg(rows)
		if err != nil {
			return nil, err
		}
		op.Legs = append(op.Legs, *leg)
	}
	return op, rows.Err()
}

func (t *postgresTx) InsertOperation(ctx context.Context, op *models.Operation) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO operations (id, user_id, type, status, total_stake, expected_return, actual_return, roi, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)`,
		op.ID, op.UserID, op.Type, op.Status, op.TotalStake, op.ExpectedReturn,
		nullDecimal(op.ActualReturn), nullDecimal(op.ROI), op.Description,
		op.CreatedAt, op.UpdatedAt,
	)
	return err
}

func (t *postgresTx) UpdateOperationTotals(ctx context.Context, op *models.Operation) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE operations
		SET status = $1, total_stake = $2, expected_return = $3, actual_return = $4, roi = $5,
		    description = NULLIF($6, ''), updated_at = now()
		WHERE id = $7`,
		op.Status, op.TotalStake, op.ExpectedReturn,
		nullDecimal(op.ActualReturn), nullDecimal(op.ROI), op.Description, op.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *postgresTx) DeleteOperation(ctx context.Context, operationID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM operations WHERE id = $1`, operationID)
	return err
}

func (t *postgresTx) InsertLeg(ctx context.Context, leg *models.Leg) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO bets (id, operation_id, bankroll_id, event_id, selection, league, odds, stake, status, result_value, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, now())`,
		leg.ID, leg.OperationID, leg.BankrollID, leg.EventID, leg.Selection, leg.League,
		leg.Odds, leg.Stake, leg.Status, nullDecimal(leg.ResultValue),
	)
	return err
}

func (t *postgresTx) LegByID(ctx context.Context, userID, legID uuid.UUID) (*models.Leg, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT b.id, b.operation_id, b.bankroll_id, b.event_id, b.selection, COALESCE(b.league, ''), b.odds, b.stake, b.status, b.result_value
		FROM bets b
		JOIN operations o ON o.id = b.operation_id
		WHERE b.id = $1 AND o.user_id = $2
		FOR UPDATE OF b`, legID, userID)

	leg, err := scanLeg(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return leg, err
}

func (t *postgresTx) UpdateLeg(ctx context.Context, leg *models.Leg) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE bets
		SET bankroll_id = $1, event_id = $2, selection = $3, league = NULLIF($4, ''),
		    odds = $5, stake = $6
		WHERE id = $7`,
		leg.BankrollID, leg.EventID, leg.Selection, leg.League, leg.Odds, leg.Stake, leg.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *postgresTx) UpdateLegResult(ctx context.Context, legID uuid.UUID, status models.BetStatus, resultValue decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE bets SET status = $1, result_value = $2 WHERE id = $3`,
		status, resultValue, legID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *postgresTx) DeleteLeg(ctx context.Context, legID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM bets WHERE id = $1`, legID)
	return err
}

func (t *postgresTx) CountLegs(ctx context.Context, operationID uuid.UUID) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bets WHERE operation_id = $1`, operationID).Scan(&n)
	return n, err
}

func (t *postgresTx) BestEventMatch(ctx context.Context, name string, date time.Time) (*models.Event, float64, error) {
	var ev models.Event
	var score float64
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, name, date, COALESCE(sport, ''), similarity(name, $1) AS score
		FROM events
		WHERE date::date = $2::date
		ORDER BY score DESC
		LIMIT 1`, name, date).
		Scan(&ev.ID, &ev.Name, &ev.Date, &ev.Sport, &score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return &ev, score, nil
}

func (t *postgresTx) InsertEvent(ctx context.Context, ev *models.Event) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO events (id, name, date, sport)
		VALUES ($1, $2, $3, NULLIF($4, ''))`,
		ev.ID, ev.Name, ev.Date, ev.Sport)
	return err
}

const legSelect = `
	SELECT id, operation_id, bankroll_id, event_id, selection, COALESCE(league, ''), odds, stake, status, result_value
	FROM bets`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (*models.Operation, error) {
	var op models.Operation
	var actualReturn, roi decimal.NullDecimal
	var description sql.NullString
	if err := row.Scan(&op.ID, &op.UserID, &op.Type, &op.Status, &op.TotalStake, &op.ExpectedReturn,
		&actualReturn, &roi, &description, &op.CreatedAt, &op.UpdatedAt); err != nil {
		return nil, err
	}
	op.ActualReturn = fromNullDecimal(actualReturn)
	op.ROI = fromNullDecimal(roi)
	op.Description = description.String
	return &op, nil
}

func scanLeg(row rowScanner) (*models.Leg, error) {
	var leg models.Leg
	var resultValue decimal.NullDecimal
	if err := row.Scan(&leg.ID, &leg.OperationID, &leg.BankrollID, &leg.EventID, &leg.Selection,
		&leg.League, &leg.Odds, &leg.Stake, &leg.Status, &resultValue); err != nil {
		return nil, err
	}
	leg.ResultValue = fromNullDecimal(resultValue)
	return &leg, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
