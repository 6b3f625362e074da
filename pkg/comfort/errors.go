package comfort

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Domain error taxonomy. The HTTP layer recovers these at the boundary and
// maps them to client-facing statuses; anything else surfaces as a 500.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrPreconditionRequired = errors.New("precondition required")
	ErrPreconditionFailed   = errors.New("precondition failed")
)

// isUniqueViolation reports whether err is a unique-constraint violation from
// sqlite. gorm only translates this when error translation is enabled, so the
// message text is checked as well.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
