package db

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

// DBTX is the common surface of *sql.DB and *sql.Tx. Repositories bind
// to it so a workflow operation can rebind them inside a transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Open connects to postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	log.Println("✅ Connected to database")
	return conn, nil
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func WithTx(conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Println("⚠️ rollback failed:", rbErr)
		}
		return err
	}
	return tx.Commit()
}

// TxRunner lets services demand transaction scoping without holding the
// raw *sql.DB. Mocks satisfy it by invoking fn directly.
type TxRunner interface {
	RunInTx(fn func(tx *sql.Tx) error) error
}

// SQLTxRunner is the production TxRunner over a live pool.
type SQLTxRunner struct {
	DB *sql.DB
}

func (r *SQLTxRunner) RunInTx(fn func(tx *sql.Tx) error) error {
	return WithTx(r.DB, fn)
}
