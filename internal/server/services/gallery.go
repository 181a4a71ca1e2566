package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkorobovs/sitekeeper/internal/datex"
	"github.com/mkorobovs/sitekeeper/internal/logging"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/repomanager"
	"github.com/mkorobovs/sitekeeper/internal/server/storage"
)

// galleryFolder is the key prefix gallery media live under in the media
// bucket.
const galleryFolder = "gallery"

// GalleryService uploads gallery media and serves the archive listings.
type GalleryService struct {
	repomanager repomanager.RepositoryManager
	gateway     *storage.Gateway
	bucket      string
	logger      logging.Logger
}

func NewGalleryService(m repomanager.RepositoryManager, gw *storage.Gateway, bucket string, logger logging.Logger) *GalleryService {
	return &GalleryService{repomanager: m, gateway: gw, bucket: bucket, logger: logger}
}

// Upload stores the local file in the bucket's gallery folder and inserts
// the media row filed under month/year.
func (s *GalleryService) Upload(ctx context.Context, localPath string, month int, year, author, userUID string) (bool, error) {
	key := storageKey(uuid.New().String(), localPath)
	if st := s.gateway.Upload(ctx, localPath, s.bucket, galleryFolder, key); st != storage.Ok {
		s.logger.Error(ctx, "gallery upload failed", "path", localPath, "status", st)
		return false, nil
	}

	media := &models.GalleryMedia{
		Month:   month,
		Year:    year,
		Media:   key,
		Author:  author,
		UserUID: userUID,
	}
	ok, err := s.repomanager.Gallery().Create(ctx, media)
	if err != nil {
		return false, squash(ctx, s.logger, "create gallery media", err, "key", key)
	}
	return ok, nil
}

// Delete removes the media row when ownerUID matches, then best-effort
// deletes the object behind it.
func (s *GalleryService) Delete(ctx context.Context, id int64, ownerUID, mediaKey string) (bool, error) {
	ok, err := s.repomanager.Gallery().Delete(ctx, id, ownerUID)
	if err != nil {
		return false, squash(ctx, s.logger, "delete gallery media", err, "id", id)
	}
	if !ok {
		return false, nil
	}

	if mediaKey != "" {
		if st := s.gateway.Delete(ctx, s.bucket, galleryFolder, mediaKey); st != storage.Ok {
			s.logger.Warn(ctx, "gallery media cleanup failed", "id", id, "key", mediaKey, "status", st)
		}
	}
	return true, nil
}

// Years returns the distinct years with media, newest first.
func (s *GalleryService) Years(ctx context.Context) ([]string, error) {
	years, err := s.repomanager.Gallery().Years(ctx)
	if err != nil {
		return nil, squash(ctx, s.logger, "list gallery years", err)
	}
	return years, nil
}

// MonthNames returns the names of the months with media in year,
// descending, for the archive navigation.
func (s *GalleryService) MonthNames(ctx context.Context, year string) ([]string, error) {
	months, err := s.repomanager.Gallery().MonthsByYear(ctx, year)
	if err != nil {
		return nil, squash(ctx, s.logger, "list gallery months", err, "year", year)
	}

	names := make([]string, 0, len(months))
	for _, m := range months {
		name, ok := datex.MonthName(m)
		if !ok {
			s.logger.Warn(ctx, "month out of range", "year", year, "month", m)
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// MediaByYear returns up to limit media rows for year, newest first.
func (s *GalleryService) MediaByYear(ctx context.Context, limit int, year string) ([]*models.GalleryMedia, error) {
	media, err := s.repomanager.Gallery().MediaByYear(ctx, limit, year)
	if err != nil {
		return nil, squash(ctx, s.logger, "list gallery media", err, "year", year)
	}
	return media, nil
}
