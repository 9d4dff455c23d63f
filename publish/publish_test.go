/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package publish

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	bytes.Buffer
	close func(string)
}

func (w *memWriter) Close() error {
	w.close(w.String())
	return nil
}

type memUploader struct {
	mu      sync.Mutex
	objects map[string]string
}

func (m *memUploader) NewWriter(_ context.Context, bucket, object string) io.WriteCloser {
	return &memWriter{close: func(data string) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.objects[bucket+"/"+object] = data
	}}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("quota exceeded") }
func (failingWriter) Close() error              { return nil }

type failingUploader struct{}

func (failingUploader) NewWriter(context.Context, string, string) io.WriteCloser {
	return failingWriter{}
}

// slowUploader fails writes to one object and holds the others open briefly.
type slowUploader struct {
	fail   string
	active atomic.Int32
}

type slowWriter struct {
	io.Writer
	up   *slowUploader
	fail bool
}

func (w *slowWriter) Write(p []byte) (int, error) {
	if w.fail {
		return 0, errors.New("permission denied")
	}
	return w.Writer.Write(p)
}

func (w *slowWriter) Close() error {
	if !w.fail {
		time.Sleep(20 * time.Millisecond)
	}
	w.up.active.Add(-1)
	return nil
}

func (u *slowUploader) NewWriter(_ context.Context, _, object string) io.WriteCloser {
	u.active.Add(1)
	return &slowWriter{Writer: io.Discard, up: u, fail: object == u.fail}
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		in             string
		bucket, prefix string
		wantErr        bool
	}{
		{in: "gs://reports", bucket: "reports"},
		{in: "gs://reports/runs/2026/", bucket: "reports", prefix: "runs/2026"},
		{in: "s3://reports", wantErr: true},
		{in: "gs:///x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, prefix, err := ParseURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if bucket != tt.bucket || prefix != tt.prefix {
				t.Errorf("ParseURL() = (%q, %q), want (%q, %q)", bucket, prefix, tt.bucket, tt.prefix)
			}
		})
	}
}

func TestDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "block01_acc.png"), []byte("png"), 0o644))

	up := &memUploader{objects: map[string]string{}}
	got, err := Directory(context.Background(), up, dir, "gs://reports/run-1")
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"run-1/block01_acc.png", "run-1/index.html"}, got); diff != "" {
		t.Errorf("objects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{
		"reports/run-1/index.html":      "<html>",
		"reports/run-1/block01_acc.png": "png",
	}, up.objects); diff != "" {
		t.Errorf("uploads mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectoryUploadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.md"), []byte("# r"), 0o644))

	if _, err := Directory(context.Background(), failingUploader{}, dir, "gs://reports"); err == nil {
		t.Error("expected an upload error")
	}
}

func TestDirectoryWaitsForUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "charts"), 0o755))
	for _, name := range []string{"index.html", "report.md", "charts/a.png", "charts/b.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	up := &slowUploader{fail: "run/charts/a.png"}
	_, err := Directory(context.Background(), up, dir, "gs://reports/run")
	if err == nil {
		t.Fatal("expected an upload error")
	}
	if n := up.active.Load(); n != 0 {
		t.Errorf("%d uploads still open after Directory returned", n)
	}
}

func TestContentType(t *testing.T) {
	if got := contentType("a/index.html"); got != "text/html; charset=utf-8" {
		t.Errorf("contentType(html) = %q", got)
	}
	if got := contentType("a/blob"); got != "application/octet-stream" {
		t.Errorf("contentType(blob) = %q", got)
	}
}
