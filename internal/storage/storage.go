// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded project media either in an
// S3-compatible bucket or on a local filesystem.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage is where optimized project images end up.
type Storage interface {
	// Put writes data under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for key.
	URL(key string) string
	// KeyFromURL maps a public URL back to its key. ok is false when the
	// URL does not belong to this storage.
	KeyFromURL(rawURL string) (key string, ok bool)
}

// ObjectKey builds a unique key such as "projects/2026/03/<uuid>.jpg".
func ObjectKey(prefix, ext string, now time.Time) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	prefix = strings.Trim(prefix, "/")
	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, now.Year(), now.Month(), uuid.New().String(), ext)
}

// cleanKey rejects keys that could escape the storage root.
func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", fmt.Errorf("empty storage key")
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid storage key %q", key)
		}
	}
	return key, nil
}
