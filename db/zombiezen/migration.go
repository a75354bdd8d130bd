package zombiezen

import (
	"context"

	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'guest',
	provider TEXT NOT NULL DEFAULT 'local',
	verified INTEGER NOT NULL DEFAULT 0,
	verification_token TEXT NOT NULL DEFAULT '',
	token_purpose TEXT NOT NULL DEFAULT '',
	token_expires TEXT NOT NULL DEFAULT '',
	created TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
	updated TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_users_verification_token
	ON users(verification_token) WHERE verification_token != '';
`

// Migrate creates the users schema if it does not exist yet.
func (d *Db) Migrate(ctx context.Context) error {
	conn, err := d.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	return sqlitex.ExecuteScript(conn, schema, nil)
}
