// Package repomanager wires the entity repositories to the connection pool
// and owns schema migration at startup.
package repomanager

import (
	"context"

	"github.com/mkorobovs/sitekeeper/internal/server/repositories/articles"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/events"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/gallery"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Users() users.Repository
	Articles() articles.Repository
	Events() events.Repository
	Gallery() gallery.Repository
}
