package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// InvoicePolicy selects how invoice numbers are generated. Exactly one
// policy is active per deployment.
type InvoicePolicy string

const (
	// PolicyTimestamp produces INV-YYYYMMDD-HHMMSS-<4 random digits>.
	PolicyTimestamp InvoicePolicy = "timestamp"
	// PolicySequential produces a monotonically incremented counter
	// seeded at 1001.
	PolicySequential InvoicePolicy = "sequential"
)

// Business errors surfaced to the HTTP layer. Handlers match them with
// errors.Is and map them to distinct user-visible outcomes.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateBatch    = errors.New("batch number already exists")
	ErrEmptyCart         = errors.New("no items in sale")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrExpired           = errors.New("batch has expired")
	ErrNegativeTotal     = errors.New("total cannot be negative after discount")
)

// ValidationError reports a malformed or out-of-range input field. Row is
// the 1-based cart row for sale submissions, 0 otherwise.
type ValidationError struct {
	Field string
	Row   int
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s %s", e.Row, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

// Store is the persistence gateway. All components operate through it;
// mutating operations run inside withTx so every failure path rolls back.
type Store struct {
	db     *sqlx.DB
	policy InvoicePolicy

	// now is overridable in tests.
	now func() time.Time
}

// New constructs a Store over an open database handle.
func New(db *sqlx.DB, policy InvoicePolicy) *Store {
	if policy != PolicySequential {
		policy = PolicyTimestamp
	}
	return &Store{db: db, policy: policy, now: time.Now}
}

// withTx runs fn inside a transaction, rolling back on error or panic and
// committing otherwise.
func (s *Store) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)
