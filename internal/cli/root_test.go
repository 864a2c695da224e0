// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
)

// run executes the command line with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "testing")
	t.Setenv("LOG_LEVEL", "error")
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	root := NewRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "worker", "load", "proficiency", "gallery", "messages", "projects", "cache"} {
		assert.True(t, names[want], "missing command %q", want)
	}

	sub, _, err := root.Find([]string{"messages", "replied"})
	require.NoError(t, err)
	assert.Equal(t, "replied", sub.Name())

	sub, _, err = root.Find([]string{"cache", "log"})
	require.NoError(t, err)
	assert.Equal(t, "log", sub.Name())

	sub, _, err = root.Find([]string{"projects", "unpublish"})
	require.NoError(t, err)
	assert.Equal(t, "unpublish", sub.Name())
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"load needs a file", []string{"load"}, "accepts 1 arg(s)"},
		{"bad message id", []string{"messages", "read", "not-a-uuid"}, `invalid id "not-a-uuid"`},
		{"empty gallery import", []string{"gallery", "import", "aura-app"}, "nothing to import"},
		{"feature needs a project", []string{"projects", "feature"}, "requires at least 1 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(good, []byte(`[
		{"title": "Aura", "slug": "aura", "technologies": ["Go"]},
		{"title": "Nova", "slug": "nova", "completed_at": "2025-02-01"}
	]`), 0o644))

	out, err := run(t, "load", "--check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 projects are valid.")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"title": "No slug"}]`), 0o644))
	_, err = run(t, "load", "--check", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No slug")

	_, err = run(t, "load", "--check", filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "open project file")
}

func TestParseIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids, err := parseIDs([]string{a.String(), b.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = parseIDs([]string{a.String(), "42"})
	assert.ErrorContains(t, err, `invalid id "42"`)
}

func TestPrintMessages(t *testing.T) {
	at := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	printMessages(&buf, []models.ContactMessage{
		{ID: uuid.New(), Name: "Ann", Email: "ann@example.com", Subject: "Hello", CreatedAt: at},
		{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", Subject: "Quote", CreatedAt: at, IsRead: true},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "2026-03-02 09:00")
	assert.Contains(t, lines[1], "Ann <ann@example.com>")
	assert.Contains(t, lines[1], "new")
	assert.Contains(t, lines[2], "Bob <bob@example.com>")
	assert.Contains(t, lines[2], "read")
}
