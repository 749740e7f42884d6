package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/humidor/internal/config"
	"github.com/julianstephens/humidor/internal/lockfile"
	"github.com/julianstephens/humidor/internal/models"
	"github.com/julianstephens/humidor/internal/storage/memory"
	"github.com/julianstephens/humidor/internal/storage/sqlite"
)

func newContext(t *testing.T, input string) (*Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	ctx := NewContext(context.Background(), memory.New(), cfg)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader(input)
	return ctx, out
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ctx, out := newContext(t, tt.input)
			got, err := ctx.Confirm("Delete?")
			if err != nil {
				t.Fatalf("Confirm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "Delete? [y/N]: ") {
				t.Errorf("prompt not printed: %q", out.String())
			}
		})
	}
}

func TestConfirmYesFlag(t *testing.T) {
	ctx, out := newContext(t, "")
	ctx.Yes = true
	ok, err := ctx.Confirm("Delete?")
	if err != nil || !ok {
		t.Errorf("Confirm with Yes = %v, %v", ok, err)
	}
	if out.Len() != 0 {
		t.Errorf("no prompt expected with Yes, got %q", out.String())
	}
}

func TestAcquireWriteLock(t *testing.T) {
	ctx, _ := newContext(t, "")

	release, err := ctx.AcquireWriteLock()
	if err != nil {
		t.Fatalf("AcquireWriteLock failed: %v", err)
	}
	if _, err := ctx.AcquireWriteLock(); !errors.Is(err, lockfile.ErrLocked) {
		t.Errorf("second acquire should fail with ErrLocked, got %v", err)
	}
	release()

	release, err = ctx.AcquireWriteLock()
	if err != nil {
		t.Fatalf("AcquireWriteLock after release failed: %v", err)
	}
	release()
}

func TestPerformAutomaticBackup(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	store := sqlite.NewStore(filepath.Join(dir, "humidor.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	ctx := NewContext(context.Background(), store, cfg)
	if _, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964"}); err != nil {
		t.Fatal(err)
	}

	ctx.PerformAutomaticBackup()
	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, _ := mgr.ListBackups()
	if len(backups) != 1 {
		t.Errorf("expected 1 automatic backup, got %d", len(backups))
	}

	cfg.Backups.Auto = false
	ctx.PerformAutomaticBackup()
	backups, _ = mgr.ListBackups()
	if len(backups) != 1 {
		t.Errorf("disabled auto backup still ran, got %d backups", len(backups))
	}
}

func TestPerformAutomaticBackupMemory(t *testing.T) {
	ctx, _ := newContext(t, "")
	// Unsupported media are skipped without error
	ctx.PerformAutomaticBackup()
}

func TestFormatting(t *testing.T) {
	if got := FormatRating(models.Rating(4.5)); got != "4.5/5" {
		t.Errorf("FormatRating = %q", got)
	}
	if got := FormatRating(nil); got != "-" {
		t.Errorf("FormatRating(nil) = %q", got)
	}
	if got := FormatDate("not a date"); got != "not a date" {
		t.Errorf("FormatDate passthrough = %q", got)
	}
	if got := OrDash("  "); got != "-" {
		t.Errorf("OrDash = %q", got)
	}
}

func TestImageURI(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "padron.jpg")
	if err := os.WriteFile(img, []byte("jpg"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := ImageURI(img)
	if err != nil {
		t.Fatalf("ImageURI failed: %v", err)
	}
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "/padron.jpg") {
		t.Errorf("ImageURI = %q", got)
	}

	if got, _ := ImageURI("https://example.com/a.jpg"); got != "https://example.com/a.jpg" {
		t.Errorf("URIs should pass through, got %q", got)
	}
	if got, _ := ImageURI(""); got != "" {
		t.Errorf("empty should stay empty, got %q", got)
	}
	if _, err := ImageURI(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("expected error for missing image")
	}
}
