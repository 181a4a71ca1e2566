package services

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mkorobovs/sitekeeper/internal/datex"
	"github.com/mkorobovs/sitekeeper/internal/logging"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/repomanager"
	"github.com/mkorobovs/sitekeeper/internal/server/storage"
)

// articlesFolder is the key prefix article attachments live under in the
// media bucket. Rows store bare keys; the folder is implied.
const articlesFolder = "articles"

// ArticleInput carries a new article plus the local paths of its optional
// attachments, as received from the upload handler.
type ArticleInput struct {
	Title     string
	Date      time.Time
	Body      string
	Author    string
	UserUID   string
	ThumbPath string
	MainPath  string
	FilePath  string
}

// ArticleService creates, lists, and deletes articles together with their
// attachments in the media bucket.
type ArticleService struct {
	repomanager repomanager.RepositoryManager
	gateway     *storage.Gateway
	bucket      string
	logger      logging.Logger
}

func NewArticleService(m repomanager.RepositoryManager, gw *storage.Gateway, bucket string, logger logging.Logger) *ArticleService {
	return &ArticleService{repomanager: m, gateway: gw, bucket: bucket, logger: logger}
}

// storageKey builds a collision-resistant object key for a local file.
func storageKey(prefix, localPath string) string {
	return prefix + "-" + filepath.Base(localPath)
}

// Create uploads the attachments that are present and then inserts the
// article row. The uploads and the insert are not two-phase coordinated: a
// failed insert leaves already-uploaded objects behind.
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (bool, error) {
	article := &models.Article{
		Title:   in.Title,
		Date:    datex.FormatDisplayDate(in.Date),
		Body:    in.Body,
		Author:  in.Author,
		UserUID: in.UserUID,
	}

	prefix := uuid.New().String()

	uploads := []struct {
		path string
		dest *string
	}{
		{in.ThumbPath, &article.ImgThumb},
		{in.MainPath, &article.ImgMain},
		{in.FilePath, &article.File},
	}
	for _, u := range uploads {
		if u.path == "" {
			continue
		}
		key := storageKey(prefix, u.path)
		if st := s.gateway.Upload(ctx, u.path, s.bucket, articlesFolder, key); st != storage.Ok {
			s.logger.Error(ctx, "article attachment upload failed", "path", u.path, "status", st)
			return false, nil
		}
		*u.dest = key
	}
	if in.FilePath != "" {
		article.FileName = filepath.Base(in.FilePath)
	}

	ok, err := s.repomanager.Articles().Create(ctx, article)
	if err != nil {
		return false, squash(ctx, s.logger, "create article", err, "title", in.Title)
	}
	return ok, nil
}

// Delete removes the article when ownerUID matches, then best-effort
// deletes its attachment keys from the bucket. Failed object deletes are
// logged, not surfaced: the row is already gone.
func (s *ArticleService) Delete(ctx context.Context, id int64, ownerUID string, fileKeys []string) (bool, error) {
	ok, err := s.repomanager.Articles().Delete(ctx, id, ownerUID)
	if err != nil {
		return false, squash(ctx, s.logger, "delete article", err, "id", id)
	}
	if !ok {
		return false, nil
	}

	for _, key := range fileKeys {
		if key == "" {
			continue
		}
		if st := s.gateway.Delete(ctx, s.bucket, articlesFolder, key); st != storage.Ok {
			s.logger.Warn(ctx, "article attachment cleanup failed", "id", id, "key", key, "status", st)
		}
	}
	return true, nil
}

// List returns up to limit articles, newest first.
func (s *ArticleService) List(ctx context.Context, limit int) ([]*models.Article, error) {
	list, err := s.repomanager.Articles().List(ctx, limit)
	if err != nil {
		return nil, squash(ctx, s.logger, "list articles", err, "limit", limit)
	}
	return list, nil
}
