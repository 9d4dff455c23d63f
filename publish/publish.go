/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package publish uploads a generated report directory to Cloud Storage.
package publish

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// maxParallelUploads bounds concurrent object writes.
const maxParallelUploads = 8

// Uploader opens writers for bucket objects.
type Uploader interface {
	NewWriter(ctx context.Context, bucket, object string) io.WriteCloser
}

// GCS uploads objects with a Cloud Storage client.
type GCS struct {
	client *storage.Client
}

// NewGCS creates an uploader using application default credentials.
func NewGCS(ctx context.Context) (*GCS, error) {
	c, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCS{client: c}, nil
}

// NewWriter implements Uploader.
func (g *GCS) NewWriter(ctx context.Context, bucket, object string) io.WriteCloser {
	w := g.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType(object)
	return w
}

// Close releases the underlying client.
func (g *GCS) Close() error {
	return g.client.Close()
}

// ParseURL splits a gs://bucket/prefix URL.
func ParseURL(s string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(s, "gs://")
	if !ok {
		return "", "", fmt.Errorf("publish URL %q must start with gs://", s)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("publish URL %q has no bucket", s)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// Directory uploads every regular file under dir to url and returns the
// object names written, sorted.
func Directory(ctx context.Context, up Uploader, dir, url string) ([]string, error) {
	bucket, prefix, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	// Object names are resolved before any upload starts.
	type file struct{ path, rel string }
	var files []file
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, file{path: p, rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var (
		mu      sync.Mutex
		objects []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for _, f := range files {
		object := path.Join(prefix, f.rel)
		g.Go(func() error {
			if err := upload(gctx, up, bucket, object, f.path); err != nil {
				return fmt.Errorf("uploading %s: %w", f.rel, err)
			}
			mu.Lock()
			objects = append(objects, object)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(objects)
	clog.FromContext(ctx).Infof("Published %d files to gs://%s/%s", len(objects), bucket, prefix)
	return objects, nil
}

func upload(ctx context.Context, up Uploader, bucket, object, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	w := up.NewWriter(ctx, bucket, object)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func contentType(object string) string {
	if t := mime.TypeByExtension(path.Ext(object)); t != "" {
		return t
	}
	return "application/octet-stream"
}
