// Package storage keeps uploaded media in a blob bucket and returns retrieval
// URLs for it.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"fashion-storefront/internal/domain"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

type Storage interface {
	// Put stores r under the slash-separated object path and returns its URL.
	Put(ctx context.Context, objectPath string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// Object is a stored file opened for reading. The caller closes it.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

// Bucket stores objects in a blob bucket and serves them from BaseURL/files/.
type Bucket struct {
	bucket  *blob.Bucket
	baseURL string
}

func NewBucket(b *blob.Bucket, baseURL string) *Bucket {
	return &Bucket{bucket: b, baseURL: strings.TrimRight(baseURL, "/")}
}

// Open opens the bucket named by bucketURL, for example
// "file:///var/lib/storefront/uploads" or "s3://media?region=ap-south-1".
// An empty bucketURL selects a local directory bucket rooted at dir, created
// when missing. Drivers other than file must be registered by the caller.
func Open(ctx context.Context, bucketURL, dir, baseURL string) (*Bucket, error) {
	var (
		b   *blob.Bucket
		err error
	)
	if bucketURL == "" {
		b, err = fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	} else {
		b, err = blob.OpenBucket(ctx, bucketURL)
	}
	if err != nil {
		return nil, fmt.Errorf("open upload bucket: %w", err)
	}
	return NewBucket(b, baseURL), nil
}

func (s *Bucket) Put(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	key, err := cleanKey(objectPath)
	if err != nil {
		return "", err
	}
	// Cancelling the writer's context discards a partial upload.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", key, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return "", fmt.Errorf("write upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("commit upload %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *Bucket) Delete(ctx context.Context, objectPath string) error {
	key, err := cleanKey(objectPath)
	if err != nil {
		return err
	}
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Open returns a reader over the stored object.
func (s *Bucket) Open(ctx context.Context, objectPath string) (*Object, error) {
	key, err := cleanKey(objectPath)
	if err != nil {
		return nil, err
	}
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return &Object{ReadCloser: r, Size: r.Size(), ContentType: r.ContentType()}, nil
}

func (s *Bucket) Close() error {
	return s.bucket.Close()
}

// URL is the public address of an object path.
func (s *Bucket) URL(objectPath string) string {
	return s.baseURL + "/files/" + objectPath
}

// cleanKey normalises an object path. A ".." segment is rejected; dots
// inside a name are kept.
func cleanKey(objectPath string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(objectPath), "/")
	if trimmed == "" {
		return "", domain.Invalid("path", "required")
	}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == ".." {
			return "", domain.Invalid("path", "must not contain a .. segment")
		}
	}
	clean := path.Clean(trimmed)
	if clean == "." {
		return "", domain.Invalid("path", "required")
	}
	return clean, nil
}

// Object paths by media kind.

func ProductImagePath(filename string, now time.Time) string {
	return fmt.Sprintf("products/%d_%s", now.Unix(), SafeName(filename))
}

func BannerPath(slideID, filename string) string {
	return fmt.Sprintf("home_banners/%s-%s", slideID, SafeName(filename))
}

func BlogFeaturePath(filename string, now time.Time) string {
	return fmt.Sprintf("blog/featureImages/%d_%s", now.Unix(), SafeName(filename))
}

func BlogContentPath(filename string, now time.Time) string {
	return fmt.Sprintf("blog/contentImages/%d_%s", now.Unix(), SafeName(filename))
}

func ProfilePath(userID string) string {
	return "profileImages/" + userID
}

// SafeName reduces a client file name to its base with spaces replaced.
func SafeName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r == '/' || r < 0x20:
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
