// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a delete cannot proceed because
// dependent records still reference the row (a booking pointing at an
// event or venue), while ErrConcurrency signals that a row was changed
// by someone else between read and write.
package repository

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a delete cannot be performed because of
// conflicting state, such as attempting to delete an event that still
// has bookings. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrConcurrency is returned when a version-guarded update matches no
// row even though the row exists, meaning it was modified since it was
// read. The caller must reload the row and retry; nothing is merged
// automatically.
var ErrConcurrency = errors.New("concurrent modification")

// restrict-on-delete violations surface from MySQL as error 1451
// ("Cannot delete or update a parent row: a foreign key constraint fails").
const mysqlErrRowIsReferenced = 1451

// isRestrictViolation reports whether err is the MySQL foreign-key
// restrict error raised when dependent rows still reference the parent.
func isRestrictViolation(err error) bool {
	var me *mysqldriver.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrRowIsReferenced
}
