package db

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err was caused by a unique index
// conflict, e.g. two concurrent provisioning calls racing on the same
// email. The losing transaction aborts with this error and the service
// layer converts it to a validation failure.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
