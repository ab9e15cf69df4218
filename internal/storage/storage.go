// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage publishes converted media files and returns the URL they
// are served from. Two backends exist: an S3-compatible bucket (path-style,
// for CEPH/Hetzner/MinIO) and a local directory served by the app itself.
package storage

import (
	"context"
	"io"
)

// Bucket stores one object under key and returns its public URL.
type Bucket interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
