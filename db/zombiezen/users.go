package zombiezen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joblane/backend/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const userColumns = `id, name, email, password, role, provider, verified,
	verification_token, token_purpose, token_expires, created, updated`

// newUserFromStmt creates a User struct from a SQLite statement
func newUserFromStmt(stmt *sqlite.Stmt) (*db.User, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	tokenExpires, err := db.TimeParse(stmt.GetText("token_expires"))
	if err != nil {
		return nil, fmt.Errorf("error parsing token_expires time: %w", err)
	}

	return &db.User{
		ID:                stmt.GetText("id"),
		Name:              stmt.GetText("name"),
		Email:             stmt.GetText("email"),
		Password:          stmt.GetText("password"),
		Role:              db.Role(stmt.GetText("role")),
		Provider:          db.AuthProvider(stmt.GetText("provider")),
		Verified:          stmt.GetInt64("verified") != 0,
		VerificationToken: stmt.GetText("verification_token"),
		TokenPurpose:      db.TokenPurpose(stmt.GetText("token_purpose")),
		TokenExpires:      tokenExpires,
		Created:           created,
		Updated:           updated,
	}, nil
}

func (d *Db) getUserWhere(where string, arg string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User // remains nil if no rows found
	err = sqlitex.Execute(conn,
		fmt.Sprintf(`SELECT %s FROM users WHERE %s LIMIT 1`, userColumns, where),
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{arg},
		})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserById retrieves a user by id. A nil user with a nil error
// indicates no matching record was found.
func (d *Db) GetUserById(id string) (*db.User, error) {
	return d.getUserWhere("id = ?", id)
}

// GetUserByEmail retrieves a user by email address.
func (d *Db) GetUserByEmail(email string) (*db.User, error) {
	return d.getUserWhere("email = ?", email)
}

// GetUserByVerificationToken retrieves the user an active or expired
// verification token is bound to.
func (d *Db) GetUserByVerificationToken(token string) (*db.User, error) {
	if token == "" {
		return nil, nil
	}
	return d.getUserWhere("verification_token = ?", token)
}

func isUniqueConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (d *Db) insertUser(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	var created *db.User
	err = sqlitex.Execute(conn,
		fmt.Sprintf(`INSERT INTO users
		(id, name, email, password, role, provider, verified, verification_token, token_purpose, token_expires)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING %s`, userColumns),
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.ID, user.Name, user.Email, user.Password,
				string(user.Role), string(user.Provider), boolToInt(user.Verified),
				user.VerificationToken, string(user.TokenPurpose), timeText(user.TokenExpires),
			},
		})
	if err != nil {
		if isUniqueConstraintErr(err) {
			return nil, db.ErrConstraintUnique
		}
		return nil, err
	}
	return created, nil
}

// CreateUserWithPassword inserts a locally registered user. The caller
// provides the password hash and, usually, a fresh verification token.
func (d *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	user.Provider = db.ProviderLocal
	return d.insertUser(user)
}

// CreateUserWithOauth2 inserts a user established by an external
// identity provider: verified, no password hash, no pending token.
func (d *Db) CreateUserWithOauth2(user db.User) (*db.User, error) {
	user.Password = ""
	user.Verified = true
	user.VerificationToken = ""
	user.TokenPurpose = ""
	return d.insertUser(user)
}

func (d *Db) exec(query string, args ...interface{}) (int, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args})
	if err != nil {
		return 0, err
	}
	return conn.Changes(), nil
}

func (d *Db) UpdatePassword(userID string, newPassword string) error {
	_, err := d.exec(
		`UPDATE users
		SET password = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		newPassword, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (d *Db) UpdateRole(userID string, role db.Role) error {
	_, err := d.exec(
		`UPDATE users
		SET role = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		string(role), userID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// SetVerificationToken binds a single-use token to the user, replacing
// any previous one.
func (d *Db) SetVerificationToken(userID string, token string, purpose db.TokenPurpose, expires time.Time) error {
	_, err := d.exec(
		`UPDATE users
		SET verification_token = ?,
			token_purpose = ?,
			token_expires = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		token, string(purpose), timeText(expires), userID)
	if err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	return nil
}

// ConsumeVerificationToken clears the token in a single UPDATE keyed on
// the token value and purpose. SQLite's one-writer-at-a-time model makes
// the statement atomic: of two concurrent consumers exactly one sees a
// non-zero change count. Guests are promoted to the standard role only
// when consuming an email verification token.
func (d *Db) ConsumeVerificationToken(token string, purpose db.TokenPurpose) (int, error) {
	if token == "" {
		return 0, nil
	}
	changed, err := d.exec(
		`UPDATE users
		SET verification_token = '',
			token_purpose = '',
			token_expires = '',
			verified = 1,
			role = IIF(? = 'email_verification' AND role = 'guest', 'user', role),
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE verification_token = ? AND token_purpose = ?`,
		string(purpose), token, string(purpose))
	if err != nil {
		return 0, fmt.Errorf("failed to consume verification token: %w", err)
	}
	return changed, nil
}

func (d *Db) CountUsers() (int, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer d.pool.Put(conn)

	var count int
	err = sqlitex.Execute(conn, `SELECT COUNT(*) AS n FROM users`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = int(stmt.GetInt64("n"))
				return nil
			},
		})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func timeText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return db.TimeFormat(t)
}
