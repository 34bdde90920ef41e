package auth

import (
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// RepositoryManager exposes all repositories plus the teardown contract for
// the connection it wraps. Construct one at start-up and Close it on
// shutdown; nothing in this package holds a process-wide connection.
type RepositoryManager interface {
	Users() Users
	Validate() error
	Close() error
}

type mngr struct {
	db    *bun.DB
	users Users
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:    db,
		users: NewUsersRepository(db),
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}
	return nil
}

func (m mngr) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// OpenDB opens a bun.DB over the sqlite shim driver. Remote stores secure
// the connection in transit through their DSN; the caller owns the returned
// handle and its Close.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
