/*
Package sqlite provides host-side durability for roster and ledger state.

PURPOSE:
  The engine itself never persists anything - scores and feedback are
  derived, ledger state lives in memory. A host that wants durability
  snapshots the roster and accounts here and rehydrates the engine's
  inputs on startup.

KEY TABLES:
  employees:      Roster records (metrics + score histories as JSON)
  transactions:   Immutable ledger entries
  notifications:  Append-only messages; read flag is the only update

APPEND-ONLY ENFORCEMENT:
  Transactions are inserted with OR IGNORE on the primary key and are
  never updated or deleted. Notifications may only have their read flag
  flipped. Corrections happen in the ledger (as new transactions), never
  here.

WAL MODE:
  SQLite is opened with WAL for better concurrency and crash recovery.

USAGE:
  st, err := sqlite.New("./data/perform.db")
  ...
  defer st.Close()
  st.SaveSnapshot(ctx, store.List(), ledger.Accounts())
  employees, accounts, err := st.LoadSnapshot(ctx)

SEE ALSO:
  - roster: The in-memory store this rehydrates
  - rewards: Ledger accounts restored via Ledger.Restore
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/perform-engine/rewards"
	"github.com/warp/perform-engine/roster"
)

// Store snapshots roster and ledger state into SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Roster records. Metrics are flattened; histories stored as JSON.
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		role TEXT,
		dept TEXT,
		avatar TEXT,
		task_completion INTEGER NOT NULL,
		productivity INTEGER NOT NULL,
		deadlines_met INTEGER NOT NULL,
		quality_score INTEGER NOT NULL,
		attendance INTEGER NOT NULL,
		weekly_scores TEXT NOT NULL,
		monthly_scores TEXT NOT NULL,
		balance INTEGER NOT NULL DEFAULT 0
	);

	-- Append-only ledger. No UPDATE, no DELETE.
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		amount INTEGER NOT NULL,
		description TEXT,
		date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_employee
		ON transactions(employee_id, position);

	-- Append-only notifications; read flag is the single mutable column.
	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		message TEXT NOT NULL,
		read INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_employee
		ON notifications(employee_id, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SAVE
// =============================================================================

// SaveSnapshot persists the roster and ledger accounts in one database
// transaction. Employees are replaced; ledger rows are append-only
// (existing transactions are left untouched, notification read flags are
// refreshed).
func (s *Store) SaveSnapshot(ctx context.Context, employees []roster.Employee, accounts []rewards.Account) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return err
	}

	balances := make(map[string]int, len(accounts))
	for _, acc := range accounts {
		balances[acc.EmployeeID] = acc.Balance
	}

	for i, e := range employees {
		weekly, err := json.Marshal(e.WeeklyScores)
		if err != nil {
			return err
		}
		monthly, err := json.Marshal(e.MonthlyScores)
		if err != nil {
			return err
		}
		_, err = dbTx.ExecContext(ctx, `
			INSERT INTO employees
				(id, position, name, role, dept, avatar,
				 task_completion, productivity, deadlines_met, quality_score, attendance,
				 weekly_scores, monthly_scores, balance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, e.Name, e.Role, e.Dept, e.Avatar,
			e.Metrics.TaskCompletion, e.Metrics.Productivity, e.Metrics.DeadlinesMet,
			e.Metrics.QualityScore, e.Metrics.Attendance,
			string(weekly), string(monthly), balances[e.ID])
		if err != nil {
			return err
		}
	}

	for _, acc := range accounts {
		for i, tx := range acc.Transactions {
			_, err := dbTx.ExecContext(ctx, `
				INSERT OR IGNORE INTO transactions
					(id, employee_id, position, kind, amount, description, date)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				tx.ID, acc.EmployeeID, i, string(tx.Kind), tx.Amount, tx.Description,
				tx.Date.Format(time.RFC3339))
			if err != nil {
				return err
			}
		}
		for i, nt := range acc.Notifications {
			_, err := dbTx.ExecContext(ctx, `
				INSERT INTO notifications (id, employee_id, position, message, read, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET read = excluded.read`,
				nt.ID, acc.EmployeeID, i, nt.Message, boolToInt(nt.Read),
				nt.CreatedAt.Format(time.RFC3339))
			if err != nil {
				return err
			}
		}
	}

	return dbTx.Commit()
}

// =============================================================================
// LOAD
// =============================================================================

// LoadSnapshot rehydrates the roster and ledger accounts. Returns empty
// slices when the database holds no snapshot yet.
func (s *Store) LoadSnapshot(ctx context.Context) ([]roster.Employee, []rewards.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, dept, avatar,
		       task_completion, productivity, deadlines_met, quality_score, attendance,
		       weekly_scores, monthly_scores, balance
		FROM employees ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var employees []roster.Employee
	balances := make(map[string]int)
	for rows.Next() {
		var e roster.Employee
		var weekly, monthly string
		var balance int
		err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.Dept, &e.Avatar,
			&e.Metrics.TaskCompletion, &e.Metrics.Productivity, &e.Metrics.DeadlinesMet,
			&e.Metrics.QualityScore, &e.Metrics.Attendance,
			&weekly, &monthly, &balance)
		if err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal([]byte(weekly), &e.WeeklyScores); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal([]byte(monthly), &e.MonthlyScores); err != nil {
			return nil, nil, err
		}
		employees = append(employees, e)
		balances[e.ID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	accounts := make([]rewards.Account, 0, len(employees))
	for _, e := range employees {
		acc := rewards.Account{EmployeeID: e.ID, Balance: balances[e.ID]}

		acc.Transactions, err = s.loadTransactions(ctx, e.ID)
		if err != nil {
			return nil, nil, err
		}
		acc.Notifications, err = s.loadNotifications(ctx, e.ID)
		if err != nil {
			return nil, nil, err
		}
		accounts = append(accounts, acc)
	}
	return employees, accounts, nil
}

func (s *Store) loadTransactions(ctx context.Context, employeeID string) ([]rewards.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, amount, description, date
		FROM transactions WHERE employee_id = ? ORDER BY position`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []rewards.Transaction
	for rows.Next() {
		var tx rewards.Transaction
		var kind, date string
		if err := rows.Scan(&tx.ID, &kind, &tx.Amount, &tx.Description, &date); err != nil {
			return nil, err
		}
		tx.Kind = rewards.TransactionKind(kind)
		if tx.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *Store) loadNotifications(ctx context.Context, employeeID string) ([]rewards.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, message, read, created_at
		FROM notifications WHERE employee_id = ? ORDER BY position`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nts []rewards.Notification
	for rows.Next() {
		var nt rewards.Notification
		var read int
		var createdAt string
		if err := rows.Scan(&nt.ID, &nt.Message, &read, &createdAt); err != nil {
			return nil, err
		}
		nt.Read = read != 0
		if nt.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		nts = append(nts, nt)
	}
	return nts, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
