package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/footmark/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("/docs/notes.md"); got != "/docs/notes.md.footmark.bak" {
		t.Errorf("BackupPath() = %q", got)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	t.Run("copies the original", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.md")
		writeFile(t, path, "original")

		created, err := fsutil.CreateBackup(context.Background(), path)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
		}

		got, err := os.ReadFile(fsutil.BackupPath(path))
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "original" {
			t.Errorf("backup = %q, want %q", got, "original")
		}
	})

	t.Run("keeps an existing backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.md")
		writeFile(t, path, "second")
		writeFile(t, fsutil.BackupPath(path), "first")

		created, err := fsutil.CreateBackup(context.Background(), path)
		if err != nil || created {
			t.Fatalf("CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, err := os.ReadFile(fsutil.BackupPath(path))
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "first" {
			t.Errorf("backup = %q, want %q", got, "first")
		}
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.md")

		created, err := fsutil.CreateBackup(context.Background(), path)
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})
}
