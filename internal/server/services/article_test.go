package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mkorobovs/sitekeeper/internal/server/models"
)

func writeLocalFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestArticleService_Create_UploadsAttachments(t *testing.T) {
	client := newMemClient("site-media")
	var captured *models.Article
	m := &stubManager{articles: &stubArticles{
		createFn: func(ctx context.Context, article *models.Article) (bool, error) {
			captured = article
			return true, nil
		},
	}}
	s := NewArticleService(m, newMemGateway(t, client), "site-media", testLogger())

	thumb := writeLocalFile(t, "thumb.jpg", "t")
	file := writeLocalFile(t, "report.pdf", "r")

	ok, err := s.Create(context.Background(), ArticleInput{
		Title:     "Opening night",
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Body:      "doors at seven",
		Author:    "alice",
		UserUID:   "uid-1",
		ThumbPath: thumb,
		FilePath:  file,
	})
	if err != nil || !ok {
		t.Fatalf("Create = (%v, %v), want (true, nil)", ok, err)
	}

	if captured.Date != "Monday 1st January 2024" {
		t.Errorf("Date = %q, want display format", captured.Date)
	}
	if captured.ImgThumb == "" || !strings.HasSuffix(captured.ImgThumb, "-thumb.jpg") {
		t.Errorf("ImgThumb = %q, want prefixed key", captured.ImgThumb)
	}
	if captured.ImgMain != "" {
		t.Errorf("ImgMain = %q, want empty (not supplied)", captured.ImgMain)
	}
	if captured.FileName != "report.pdf" {
		t.Errorf("FileName = %q, want original name", captured.FileName)
	}

	if _, ok := client.buckets["site-media"]["articles/"+captured.ImgThumb]; !ok {
		t.Error("thumb object missing from bucket")
	}
	if _, ok := client.buckets["site-media"]["articles/"]; !ok {
		t.Error("articles folder marker missing")
	}
}

func TestArticleService_Create_UploadFailureStopsInsert(t *testing.T) {
	client := newMemClient() // no bucket: every upload resolves BadRequest
	inserted := false
	m := &stubManager{articles: &stubArticles{
		createFn: func(ctx context.Context, article *models.Article) (bool, error) {
			inserted = true
			return true, nil
		},
	}}
	s := NewArticleService(m, newMemGateway(t, client), "site-media", testLogger())

	thumb := writeLocalFile(t, "thumb.jpg", "t")
	ok, err := s.Create(context.Background(), ArticleInput{Title: "x", ThumbPath: thumb})
	if ok || err != nil {
		t.Errorf("Create = (%v, %v), want (false, nil)", ok, err)
	}
	if inserted {
		t.Error("row inserted despite failed upload")
	}
}

func TestArticleService_Delete_CleansUpAttachments(t *testing.T) {
	client := newMemClient("site-media")
	client.buckets["site-media"]["articles/"] = nil
	client.buckets["site-media"]["articles/k1-thumb.jpg"] = []byte("t")
	m := &stubManager{articles: &stubArticles{
		deleteFn: func(ctx context.Context, id int64, ownerUID string) (bool, error) {
			return true, nil
		},
	}}
	s := NewArticleService(m, newMemGateway(t, client), "site-media", testLogger())

	ok, err := s.Delete(context.Background(), 7, "uid-1", []string{"k1-thumb.jpg", ""})
	if err != nil || !ok {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", ok, err)
	}
	if _, ok := client.buckets["site-media"]["articles/k1-thumb.jpg"]; ok {
		t.Error("attachment still in bucket")
	}
}

func TestArticleService_Delete_OwnerMismatch(t *testing.T) {
	client := newMemClient("site-media")
	client.buckets["site-media"]["articles/"] = nil
	client.buckets["site-media"]["articles/k1-thumb.jpg"] = []byte("t")
	m := &stubManager{articles: &stubArticles{
		deleteFn: func(ctx context.Context, id int64, ownerUID string) (bool, error) {
			return false, nil
		},
	}}
	s := NewArticleService(m, newMemGateway(t, client), "site-media", testLogger())

	ok, err := s.Delete(context.Background(), 7, "intruder", []string{"k1-thumb.jpg"})
	if err != nil || ok {
		t.Fatalf("Delete = (%v, %v), want (false, nil)", ok, err)
	}
	if _, ok := client.buckets["site-media"]["articles/k1-thumb.jpg"]; !ok {
		t.Error("attachment removed despite refused row delete")
	}
}

func TestArticleService_List_SwallowsRepoError(t *testing.T) {
	m := &stubManager{articles: &stubArticles{
		listFn: func(ctx context.Context, limit int) ([]*models.Article, error) {
			return nil, errors.New("select failed")
		},
	}}
	s := NewArticleService(m, newMemGateway(t, newMemClient()), "site-media", testLogger())

	list, err := s.List(context.Background(), 10)
	if list != nil || err != nil {
		t.Errorf("List = (%v, %v), want (nil, nil)", list, err)
	}
}
