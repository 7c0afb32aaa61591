package errors

import (
	"errors"
	"fmt"

	kdb "github.com/azure/feast-azure/pkg/db"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return kdb.ErrMissing
}

// record to be inserted has the same key with an existing one.
type Conflict struct {
	Table    string
	Identity string
	Cause    error
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s already exists in %s", c.Identity, c.Table)
}

func (c Conflict) Unwrap() []error {
	if c.Cause == nil {
		return []error{kdb.ErrConflict}
	}
	return []error{kdb.ErrConflict, c.Cause}
}

// Code returns the SQLSTATE of err, or "" when err is not from PostgreSQL.
func Code(err error) string {
	pgerr := new(pgconn.PgError)
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return Code(err) == pgerrcode.UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return Code(err) == pgerrcode.ForeignKeyViolation
}
