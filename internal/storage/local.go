// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalDisk writes objects into a directory that the router serves under
// URLPrefix.
type LocalDisk struct {
	dir       string
	urlPrefix string
}

// NewLocalDisk creates dir if needed and returns a bucket rooted there.
func NewLocalDisk(dir, urlPrefix string) (*LocalDisk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", dir, err)
	}
	return &LocalDisk{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// Dir returns the directory objects are written to.
func (l *LocalDisk) Dir() string {
	return l.dir
}

// Put writes body to dir/key through a temp file and a rename, so readers
// never see a half-written image. Keys may not leave the directory.
func (l *LocalDisk) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != key {
		return "", fmt.Errorf("local put: invalid key %q", key)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(l.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("local put %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".put-*")
	if err != nil {
		return "", fmt.Errorf("local put %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("local put %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("local put %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("local put %s: %w", key, err)
	}

	return l.FileURL(clean), nil
}

// FileURL returns the URL path a stored key is served from.
func (l *LocalDisk) FileURL(key string) string {
	if l.urlPrefix == "/" {
		return "/" + key
	}
	return l.urlPrefix + "/" + key
}
