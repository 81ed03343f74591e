// Package uow provides unit-of-work transaction management over a GORM
// session.
//
// A unit of work is an arbitrary sequence of persistence mutations that
// must commit entirely or roll back entirely. uow.Run wraps such a
// sequence in exactly one transactional boundary:
//
//	err := uow.Run(session, func(tx *gorm.DB) error {
//	    if err := tx.Exec(`DELETE ...`).Error; err != nil {
//	        return err
//	    }
//	    return tx.Create(&row).Error
//	})
//
// # Nesting
//
// When the supplied session is already inside a transaction, Run opens a
// savepoint instead of a new top-level transaction. A failure inside the
// nested work rolls back to the savepoint only; the parent transaction and
// its earlier writes survive, and the caller decides whether to commit or
// roll back the whole.
//
// # Failure modes
//
//   - A missing or unusable session raises *ConfigurationError before any
//     database interaction. This is an implementer bug, not a runtime
//     condition to retry.
//   - Any error returned by the work (domain or persistence) rolls back
//     the active scope and is re-returned with its identity preserved.
//   - Panics roll back the active scope and re-panic; the rollback path
//     always runs.
//
// RunReadOnly documents a no-write contract but opens and commits the same
// scope; it does not enforce the absence of writes.
package uow
