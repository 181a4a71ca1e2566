// Package articles implements the article repository: variable-column
// creation, owner-scoped deletion, and bounded newest-first listing.
package articles

import (
	"context"

	"github.com/mkorobovs/sitekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the article. The optional file columns (imgThumb,
	// imgMain, file, fileName) are included only when set.
	Create(ctx context.Context, article *models.Article) (bool, error)

	// Delete removes the article only when ownerUID matches the stored
	// owner; an id without matching owner yields false, not an error.
	Delete(ctx context.Context, id int64, ownerUID string) (bool, error)

	// List returns up to limit articles, newest first by creation time.
	List(ctx context.Context, limit int) ([]*models.Article, error)
}
