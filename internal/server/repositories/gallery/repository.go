// Package gallery implements the media-gallery repository, including the
// distinct year/month archive listings.
package gallery

import (
	"context"

	"github.com/mkorobovs/sitekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the media row.
	Create(ctx context.Context, media *models.GalleryMedia) (bool, error)

	// Delete removes the media row only when ownerUID matches the stored
	// owner.
	Delete(ctx context.Context, id int64, ownerUID string) (bool, error)

	// Years returns the distinct years with media, newest first.
	Years(ctx context.Context) ([]string, error)

	// MonthsByYear returns the distinct months with media in year,
	// descending.
	MonthsByYear(ctx context.Context, year string) ([]int, error)

	// MediaByYear returns up to limit media rows for year, newest first by
	// creation time.
	MediaByYear(ctx context.Context, limit int, year string) ([]*models.GalleryMedia, error)
}
