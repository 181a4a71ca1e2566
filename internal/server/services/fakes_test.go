package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mkorobovs/sitekeeper/internal/logging"
	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/articles"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/events"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/gallery"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/users"
	"github.com/mkorobovs/sitekeeper/internal/server/storage"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubManager satisfies repomanager.RepositoryManager with pluggable repos.
type stubManager struct {
	users    users.Repository
	articles articles.Repository
	events   events.Repository
	gallery  gallery.Repository
}

func (m *stubManager) RunMigrations(context.Context) error { return nil }
func (m *stubManager) Users() users.Repository             { return m.users }
func (m *stubManager) Articles() articles.Repository       { return m.articles }
func (m *stubManager) Events() events.Repository           { return m.events }
func (m *stubManager) Gallery() gallery.Repository         { return m.gallery }

type stubUsers struct {
	loginFn         func(ctx context.Context, username, password string) (*models.User, error)
	crossCheckFn    func(ctx context.Context, value string, column db.Column, xValue string, xColumn db.Column) (bool, error)
	updateAccountFn func(ctx context.Context, currentEmail string, update users.AccountUpdate) (bool, error)
}

func (s *stubUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return user, nil
}
func (s *stubUsers) Exists(ctx context.Context, value string, column db.Column) (bool, error) {
	return false, nil
}
func (s *stubUsers) CrossCheck(ctx context.Context, value string, column db.Column, xValue string, xColumn db.Column) (bool, error) {
	return s.crossCheckFn(ctx, value, column, xValue, xColumn)
}
func (s *stubUsers) GetField(ctx context.Context, column, constraintColumn db.Column, constraint string) (string, error) {
	return "", nil
}
func (s *stubUsers) UpdateField(ctx context.Context, value string, column, constraintColumn db.Column, constraint string) (bool, error) {
	return false, nil
}
func (s *stubUsers) Login(ctx context.Context, username, password string) (*models.User, error) {
	return s.loginFn(ctx, username, password)
}
func (s *stubUsers) UpdateAccount(ctx context.Context, currentEmail string, update users.AccountUpdate) (bool, error) {
	return s.updateAccountFn(ctx, currentEmail, update)
}

type stubArticles struct {
	createFn func(ctx context.Context, article *models.Article) (bool, error)
	deleteFn func(ctx context.Context, id int64, ownerUID string) (bool, error)
	listFn   func(ctx context.Context, limit int) ([]*models.Article, error)
}

func (s *stubArticles) Create(ctx context.Context, article *models.Article) (bool, error) {
	return s.createFn(ctx, article)
}
func (s *stubArticles) Delete(ctx context.Context, id int64, ownerUID string) (bool, error) {
	return s.deleteFn(ctx, id, ownerUID)
}
func (s *stubArticles) List(ctx context.Context, limit int) ([]*models.Article, error) {
	return s.listFn(ctx, limit)
}

type stubEvents struct {
	createFn func(ctx context.Context, event *models.Event) (bool, error)
	deleteFn func(ctx context.Context, id int64, ownerUID string) (bool, error)
	listFn   func(ctx context.Context, limit int) ([]*models.Event, error)
}

func (s *stubEvents) Create(ctx context.Context, event *models.Event) (bool, error) {
	return s.createFn(ctx, event)
}
func (s *stubEvents) Delete(ctx context.Context, id int64, ownerUID string) (bool, error) {
	return s.deleteFn(ctx, id, ownerUID)
}
func (s *stubEvents) List(ctx context.Context, limit int) ([]*models.Event, error) {
	return s.listFn(ctx, limit)
}

type stubGallery struct {
	createFn func(ctx context.Context, media *models.GalleryMedia) (bool, error)
	deleteFn func(ctx context.Context, id int64, ownerUID string) (bool, error)
	yearsFn  func(ctx context.Context) ([]string, error)
	monthsFn func(ctx context.Context, year string) ([]int, error)
	mediaFn  func(ctx context.Context, limit int, year string) ([]*models.GalleryMedia, error)
}

func (s *stubGallery) Create(ctx context.Context, media *models.GalleryMedia) (bool, error) {
	return s.createFn(ctx, media)
}
func (s *stubGallery) Delete(ctx context.Context, id int64, ownerUID string) (bool, error) {
	return s.deleteFn(ctx, id, ownerUID)
}
func (s *stubGallery) Years(ctx context.Context) ([]string, error) {
	return s.yearsFn(ctx)
}
func (s *stubGallery) MonthsByYear(ctx context.Context, year string) ([]int, error) {
	return s.monthsFn(ctx, year)
}
func (s *stubGallery) MediaByYear(ctx context.Context, limit int, year string) ([]*models.GalleryMedia, error) {
	return s.mediaFn(ctx, limit, year)
}

// memClient is a minimal in-memory S3 backend for gateway-backed services.
type memClient struct {
	buckets map[string]map[string][]byte
}

func newMemClient(buckets ...string) *memClient {
	c := &memClient{buckets: map[string]map[string][]byte{}}
	for _, b := range buckets {
		c.buckets[b] = map[string][]byte{}
	}
	return c
}

func (c *memClient) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	out := &s3.ListBucketsOutput{}
	for name := range c.buckets {
		out.Buckets = append(out.Buckets, types.Bucket{Name: aws.String(name)})
	}
	return out, nil
}

func (c *memClient) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for k := range c.buckets[aws.ToString(params.Bucket)] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (c *memClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	objects, ok := c.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NotFound{}
	}
	if _, ok := objects[aws.ToString(params.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (c *memClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.buckets[aws.ToString(params.Bucket)][aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (c *memClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := c.buckets[aws.ToString(params.Bucket)][aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (c *memClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(c.buckets[aws.ToString(params.Bucket)], aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func newMemGateway(t *testing.T, client *memClient) *storage.Gateway {
	t.Helper()
	return storage.NewGatewayWithClient(client, "downloads", testLogger())
}
