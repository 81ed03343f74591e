package uow

import (
	"fmt"
	"sync/atomic"

	"gorm.io/gorm"
)

// Fn is a unit of work. It receives the session scoped to the transaction
// (or savepoint) opened for it and must perform every mutation through it.
type Fn func(tx *gorm.DB) error

// ConfigurationError reports that the manager was handed a missing or
// unusable session. It is raised before any transaction is opened and
// before the unit of work runs; it never wraps an error from the work
// itself.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "uow: " + e.Reason
}

// savepointSeq numbers savepoints so concurrent nested scopes on distinct
// sessions never collide on a name.
var savepointSeq uint64

// Run executes fn inside exactly one transactional scope on session.
//
// If session is already inside a transaction, Run opens a savepoint: on
// success the savepoint merges into the parent when the parent commits; on
// failure only the savepoint is rolled back and the error is returned
// unchanged, leaving the parent transaction intact for the caller.
//
// Otherwise Run opens a top-level transaction, commits it when fn returns
// nil, and rolls it back when fn returns an error or panics. The error fn
// returned is propagated with its identity preserved; Run never swallows
// or rewraps it.
func Run(session *gorm.DB, fn Fn) error {
	if err := validateSession(session); err != nil {
		return err
	}

	if inTransaction(session) {
		return runNested(session, fn)
	}
	return runTopLevel(session, fn)
}

// RunReadOnly executes fn in the same scope Run would. The read-only
// contract is a naming convention for callers that perform no writes; the
// scope still commits on success, nothing detects or rejects writes.
func RunReadOnly(session *gorm.DB, fn Fn) error {
	return Run(session, fn)
}

// validateSession fails fast, before any database interaction, when the
// session handle cannot possibly carry a transaction.
func validateSession(session *gorm.DB) error {
	if session == nil {
		return &ConfigurationError{Reason: "nil *gorm.DB session"}
	}
	if session.Config == nil || session.Statement == nil || session.Statement.ConnPool == nil {
		return &ConfigurationError{Reason: "session has no usable connection pool; was it opened with gorm.Open?"}
	}
	return nil
}

// inTransaction reports whether the session's connection is already a
// transaction handle.
func inTransaction(session *gorm.DB) bool {
	_, ok := session.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}

func runNested(session *gorm.DB, fn Fn) (err error) {
	name := fmt.Sprintf("uow_sp_%d", atomic.AddUint64(&savepointSeq, 1))
	if spErr := session.SavePoint(name).Error; spErr != nil {
		return spErr
	}

	defer func() {
		if r := recover(); r != nil {
			session.RollbackTo(name)
			panic(r)
		}
	}()

	if err = fn(session); err != nil {
		// Undo only the savepoint; the parent stays open and its prior
		// writes stay intact. A failed ROLLBACK TO does not replace the
		// work's own error.
		session.RollbackTo(name)
		return err
	}
	return nil
}

func runTopLevel(session *gorm.DB, fn Fn) (err error) {
	tx := session.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
