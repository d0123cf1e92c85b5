package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkurilov/notehub/internal/dbx"
	"github.com/dkurilov/notehub/internal/server/repositories/notes"
	"github.com/dkurilov/notehub/internal/server/repositories/tags"
	"github.com/dkurilov/notehub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an explicit store handle
// (*sql.DB outside a transaction, *sql.Tx inside one). Services never touch
// package-level database state.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
	Tags(db dbx.DBTX) tags.Repository
}
