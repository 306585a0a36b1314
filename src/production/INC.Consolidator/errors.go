package consolidator

import (
	"errors"

	"github.com/lib/pq"
)

// ErrEmptyBatch is returned when an upload carries no candidate rows.
// It is raised before any transaction is opened.
var ErrEmptyBatch = errors.New("upload contains no rows")

// IsUniqueViolation reports whether err is a primary-key conflict from the
// storage engine. This is how a race between two concurrent uploads of
// overlapping data surfaces: the losing transaction rolls back entirely and
// the client is expected to retry, at which point the existence filter will
// skip the contested records cleanly.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
