// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Local stores media under a directory of an afero filesystem and serves
// it below urlPrefix.
type Local struct {
	fs        afero.Fs
	dir       string
	urlPrefix string
}

// NewLocal returns a Local storage rooted at dir. The directory is created
// if missing.
func NewLocal(fs afero.Fs, dir, urlPrefix string) (*Local, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", dir, err)
	}
	return &Local{
		fs:        fs,
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// Put writes data below the media directory.
func (l *Local) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	full := path.Join(l.dir, key)
	if err := l.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media subdir: %w", err)
	}
	if err := afero.WriteFile(l.fs, full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media %s: %w", key, err)
	}
	return l.URL(key), nil
}

// Delete removes a stored file. Missing files are not an error.
func (l *Local) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := l.fs.Remove(path.Join(l.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media %s: %w", key, err)
	}
	return nil
}

// URL returns the site-relative URL for key.
func (l *Local) URL(key string) string {
	return l.urlPrefix + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL strips the URL prefix.
func (l *Local) KeyFromURL(rawURL string) (string, bool) {
	prefix := l.urlPrefix + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	return rawURL[len(prefix):], true
}

// Handler serves stored files without directory listings. Mount it with
// the URL prefix stripped.
func (l *Local) Handler() http.Handler {
	files := http.FileServer(afero.NewHttpFs(l.fs).Dir(l.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
