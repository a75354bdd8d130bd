package zombiezen

import (
	"fmt"

	"github.com/joblane/backend/db"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Db implements the auth store on SQLite.
type Db struct {
	pool *sqlitex.Pool
}

var _ db.DbAuth = (*Db)(nil)

// New creates a new Db instance using an existing pool provided by the
// caller. The pool lifecycle is managed externally; this type does not
// close it.
func New(pool *sqlitex.Pool) (*Db, error) {
	if pool == nil {
		return nil, fmt.Errorf("provided pool cannot be nil")
	}
	return &Db{pool: pool}, nil
}
