package db

import (
	"database/sql"
	"fmt"

	"github.com/mkorobovs/sitekeeper/internal/common"
)

// WriteResult is the normalized outcome of a mutating statement. Changed
// mirrors Affected: the original MySQL schema distinguished changed rows
// from matched rows, Postgres does not, and success was only ever judged on
// affected rows.
type WriteResult struct {
	Affected int64
	Changed  int64
}

// OK reports whether the mutation touched at least one row.
func (r WriteResult) OK() bool {
	return r.Affected > 0
}

// NewWriteResult normalizes a driver result. A result whose affected-row
// count cannot be read is an internal fault and surfaces as an error, never
// as an empty success.
func NewWriteResult(res sql.Result) (WriteResult, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return WriteResult{}, fmt.Errorf("%w: write result not well-formed: %v", common.ErrInternal, err)
	}
	return WriteResult{Affected: n, Changed: n}, nil
}
