// Package storage implements the object-storage gateway: bucket resolution,
// emulated folders backed by zero-byte marker objects, and idempotent
// upload/delete/download of objects against an S3-compatible backend.
//
// Every operation walks the same progression — bucket resolution, folder
// existence, object existence, mutation — and a later stage runs only when
// the previous one succeeded. Callers see a Status, never a transport error.
package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mkorobovs/sitekeeper/internal/filex"
	"github.com/mkorobovs/sitekeeper/internal/logging"
	sc "github.com/mkorobovs/sitekeeper/internal/server/config"
)

// seams for testing the AWS client construction path
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Client is the subset of the S3 API the gateway uses. *s3.Client satisfies
// it; tests substitute a fake.
type Client interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Gateway performs object-storage operations for the media-handling parts
// of the backend.
type Gateway struct {
	client       Client
	downloadsDir string
	logger       logging.Logger
}

// NewGateway builds a Gateway over a real S3 client configured from cfg.
// A non-empty S3BaseEndpoint points the client at an S3-compatible service
// such as MinIO.
func NewGateway(cfg *sc.Config, logger logging.Logger) (*Gateway, error) {
	awsCfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return NewGatewayWithClient(client, cfg.DownloadsDir, logger), nil
}

// NewGatewayWithClient builds a Gateway over an existing client.
func NewGatewayWithClient(client Client, downloadsDir string, logger logging.Logger) *Gateway {
	return &Gateway{
		client:       client,
		downloadsDir: downloadsDir,
		logger:       logger,
	}
}

// NormalizeBucket canonicalizes a logical bucket name: trimmed, lower-cased,
// spaces and underscores replaced with hyphens.
func NormalizeBucket(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	n = strings.ReplaceAll(n, " ", "-")
	return n
}

// folderMarker is the key of the zero-byte object that denotes an emulated
// folder's existence.
func folderMarker(folder string) string {
	return folder + "/"
}

// isNotFound reports whether err is the backend saying the object (or the
// bucket, for HeadObject against a missing bucket) does not exist.
func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nk *types.NoSuchKey
	return errors.As(err, &nk)
}

// ResolveBucket normalizes name and checks it against the buckets the
// backend reports.
func (g *Gateway) ResolveBucket(ctx context.Context, name string) Status {
	bucket := NormalizeBucket(name)

	out, err := g.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		g.logger.Error(ctx, "list buckets failed", "bucket", bucket, "error", err)
		return Internal
	}

	for _, b := range out.Buckets {
		if aws.ToString(b.Name) == bucket {
			return Ok
		}
	}
	return NotFound
}

// ListObjects lists all object keys in the bucket. The bucket failing to
// resolve is a caller error, not a lookup miss.
func (g *Gateway) ListObjects(ctx context.Context, bucket string) ([]string, Status) {
	name := NormalizeBucket(bucket)

	if st := g.ResolveBucket(ctx, name); st != Ok {
		if st == NotFound {
			return nil, BadRequest
		}
		return nil, st
	}

	var keys []string
	var token *string
	for {
		out, err := g.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(name),
			ContinuationToken: token,
		})
		if err != nil {
			g.logger.Error(ctx, "list objects failed", "bucket", name, "error", err)
			return nil, Internal
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	if len(keys) == 0 {
		return nil, NotFound
	}
	return keys, Ok
}

// FindObject resolves a single key's presence in the bucket.
func (g *Gateway) FindObject(ctx context.Context, bucket, key string) Status {
	name := NormalizeBucket(bucket)

	if st := g.ResolveBucket(ctx, name); st != Ok {
		if st == NotFound {
			return BadRequest
		}
		return st
	}

	return g.headObject(ctx, name, key)
}

// headObject probes for key and maps the result onto the status vocabulary.
func (g *Gateway) headObject(ctx context.Context, bucket, key string) Status {
	_, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return Ok
	}
	if isNotFound(err) {
		return NotFound
	}
	g.logger.Error(ctx, "head object failed", "bucket", bucket, "key", key, "error", err)
	return Internal
}

// ensureFolder creates the folder's zero-byte marker if it is absent.
// Creating the marker twice is harmless, so a concurrent create is benign.
func (g *Gateway) ensureFolder(ctx context.Context, bucket, folder string) Status {
	marker := folderMarker(folder)

	switch st := g.headObject(ctx, bucket, marker); st {
	case Ok:
		return Ok
	case NotFound:
		// fall through to create
	default:
		return st
	}

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(marker),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		g.logger.Error(ctx, "create folder marker failed", "bucket", bucket, "folder", folder, "error", err)
		return Internal
	}
	g.logger.Info(ctx, "folder created", "bucket", bucket, "folder", folder)
	return Ok
}

// Upload streams the file at localPath to the bucket under folder/key
// (or bare key when folder is empty; the file's base name when key is
// empty). An existing object at the target key is never overwritten.
//
// The existence check and the write are not atomic: two concurrent uploads
// of the same new key can both pass the check. See DESIGN.md.
func (g *Gateway) Upload(ctx context.Context, localPath, bucket, folder, key string) Status {
	if !filex.ValidPath(localPath) || (folder != "" && !filex.ValidPath(folder)) {
		g.logger.Warn(ctx, "upload rejected: invalid path", "path", localPath, "folder", folder)
		return BadRequest
	}

	name := NormalizeBucket(bucket)
	if st := g.ResolveBucket(ctx, name); st != Ok {
		if st == NotFound {
			return BadRequest
		}
		return st
	}

	if key == "" {
		key = filepath.Base(localPath)
	}

	target := key
	if folder != "" {
		if st := g.ensureFolder(ctx, name, folder); st != Ok {
			return st
		}
		target = folder + "/" + key
	}

	switch st := g.headObject(ctx, name, target); st {
	case Ok:
		g.logger.Warn(ctx, "upload rejected: key exists", "bucket", name, "key", target)
		return Conflict
	case NotFound:
		// target key is available
	default:
		return st
	}

	f, err := os.Open(localPath)
	if err != nil {
		g.logger.Error(ctx, "open local file failed", "path", localPath, "error", err)
		return Internal
	}
	defer f.Close()

	if _, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(target),
		Body:   f,
	}); err != nil {
		g.logger.Error(ctx, "put object failed", "bucket", name, "key", target, "error", err)
		return Internal
	}

	g.logger.Info(ctx, "object uploaded", "bucket", name, "key", target)
	return Ok
}

// Delete removes folder/key from the bucket. The folder must exist and the
// object must be present.
func (g *Gateway) Delete(ctx context.Context, bucket, folder, key string) Status {
	name := NormalizeBucket(bucket)
	if st := g.ResolveBucket(ctx, name); st != Ok {
		if st == NotFound {
			return BadRequest
		}
		return st
	}

	switch st := g.headObject(ctx, name, folderMarker(folder)); st {
	case Ok:
	case NotFound:
		g.logger.Warn(ctx, "delete rejected: folder missing", "bucket", name, "folder", folder)
		return BadRequest
	default:
		return st
	}

	target := folder + "/" + key
	switch st := g.headObject(ctx, name, target); st {
	case Ok:
	case NotFound:
		g.logger.Warn(ctx, "delete rejected: object missing", "bucket", name, "key", target)
		return BadRequest
	default:
		return st
	}

	if _, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(target),
	}); err != nil {
		g.logger.Error(ctx, "delete object failed", "bucket", name, "key", target, "error", err)
		return Internal
	}

	g.logger.Info(ctx, "object deleted", "bucket", name, "key", target)
	return Ok
}

// Download fetches key from the bucket into the downloads directory, named
// after the key's base name. An existing local file of the same name is
// never clobbered. Success is resolved only once the local write stream has
// closed cleanly.
func (g *Gateway) Download(ctx context.Context, bucket, key string) Status {
	name := NormalizeBucket(bucket)
	if st := g.ResolveBucket(ctx, name); st != Ok {
		if st == NotFound {
			return BadRequest
		}
		return st
	}

	if st := g.headObject(ctx, name, key); st != Ok {
		return st
	}

	dir, err := filex.EnsureSubDir(g.downloadsDir)
	if err != nil {
		g.logger.Error(ctx, "downloads dir unavailable", "dir", g.downloadsDir, "error", err)
		return Internal
	}

	dest := filepath.Join(dir, filepath.Base(key))
	if filex.Exists(dest) {
		g.logger.Warn(ctx, "download rejected: local file exists", "path", dest)
		return BadRequest
	}

	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	})
	if err != nil {
		g.logger.Error(ctx, "get object failed", "bucket", name, "key", key, "error", err)
		return Internal
	}

	f, err := os.Create(dest)
	if err != nil {
		out.Body.Close()
		g.logger.Error(ctx, "create local file failed", "path", dest, "error", err)
		return Internal
	}

	if _, err := io.Copy(f, out.Body); err != nil {
		f.Close()
		out.Body.Close()
		os.Remove(dest)
		g.logger.Error(ctx, "write stream failed", "bucket", name, "key", key, "path", dest, "error", err)
		return Internal
	}
	out.Body.Close()

	if err := f.Close(); err != nil {
		os.Remove(dest)
		g.logger.Error(ctx, "close local file failed", "path", dest, "error", err)
		return Internal
	}

	g.logger.Info(ctx, "object downloaded", "bucket", name, "key", key, "path", dest)
	return Ok
}
