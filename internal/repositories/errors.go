package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrVerificationNotFound = errors.New("verification profile not found")
	ErrShiftNotFound        = errors.New("shift not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("active application already exists for this shift and worker")
	ErrDuplicateReview      = errors.New("review already exists for this shift and author")
	ErrDuplicateMessage     = errors.New("message with this client id already exists in the room")
	ErrEmailTaken           = errors.New("email already registered")
)

const pgUniqueViolation = "23505"

// isUniqueViolation detects a Postgres unique-constraint error so races are
// resolved by the index, not by check-then-act reads.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
