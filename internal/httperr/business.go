package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindBusiness Kind = iota
	KindValidation
	KindNotFound
	KindUnavailable
	KindConflict
	KindForbidden
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

// ErrNotFound takes the missing entity, e.g. "doctor" -> "doctor_not_found".
func ErrNotFound(entity string) error {
	return BusinessError{Kind: KindNotFound, Code: entity + "_not_found"}
}

func ErrUnavailable() error {
	return BusinessError{Kind: KindUnavailable, Code: "doctor_unavailable"}
}

func ErrConflict() error {
	return BusinessError{Kind: KindConflict, Code: "time_conflict"}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func As(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsExclusionConflict matches Postgres exclusion_violation (23P01), raised by
// the appointments overlap constraint.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}

// IsUniqueViolation matches Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
