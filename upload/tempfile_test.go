package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/scribe/errors"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestTempFiles_SaveAndRelease(t *testing.T) {
	files := newTestFiles(t)
	files.now = func() time.Time { return time.Unix(0, 1700000000000000000) }

	tf, err := files.Save(context.Background(), "../../etc/My Clip.wav", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tf.Name != "1700000000000000000-My_Clip.wav" {
		t.Errorf("Name = %q", tf.Name)
	}
	if filepath.Dir(tf.Path) != files.Dir() {
		t.Errorf("Path %q escapes %q", tf.Path, files.Dir())
	}
	data, err := os.ReadFile(tf.Path)
	if err != nil || string(data) != "audio" {
		t.Fatalf("content = %q, err = %v", data, err)
	}

	tf.Release()
	tf.Release()
	if _, err := os.Stat(tf.Path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Release")
	}
}

func TestTempFiles_CollisionBumpsTimestamp(t *testing.T) {
	files := newTestFiles(t)
	files.now = func() time.Time { return time.Unix(0, 42) }
	ctx := context.Background()

	first, err := files.Save(ctx, "a.wav", strings.NewReader("1"))
	if err != nil {
		t.Fatal(err)
	}
	defer first.Release()
	second, err := files.Save(ctx, "a.wav", strings.NewReader("2"))
	if err != nil {
		t.Fatal(err)
	}
	defer second.Release()

	if first.Name != "42-a.wav" || second.Name != "43-a.wav" {
		t.Errorf("names = %q, %q", first.Name, second.Name)
	}
}

func TestTempFiles_WriteFailureLeavesNothing(t *testing.T) {
	files := newTestFiles(t)

	_, err := files.Save(context.Background(), "a.wav", failingReader{})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeStorageFailure {
		t.Fatalf("expected STORAGE_FAILURE, got %v", err)
	}
	assertEmptyDir(t, files.Dir())
}

func TestTempFiles_Sweep(t *testing.T) {
	files := newTestFiles(t)
	dir := files.Dir()
	for _, name := range []string{"1-a.wav", "2-b.webm"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := files.Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	assertEmptyDir(t, dir)
}

func TestTempFiles_SweepKeepsForeignFiles(t *testing.T) {
	files := newTestFiles(t)
	dir := files.Dir()
	if err := os.MkdirAll(filepath.Join(dir, "keep"), 0o750); err != nil {
		t.Fatal(err)
	}
	planted := map[string]bool{
		"1700000000000000000-clip.wav": false,
		"notes.txt":                    true,
		"12.wav":                       true,
		"-1-x.wav":                     true,
		"keep/photo.jpg":               true,
		"keep/42-nested.wav":           true,
	}
	for name := range planted {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := files.Sweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	for name, keep := range planted {
		_, err := os.Stat(filepath.Join(dir, name))
		if exists := err == nil; exists != keep {
			t.Errorf("%s exists = %v, want %v", name, exists, keep)
		}
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	files := newTestFiles(t)
	c := NewComponent(files, nil)
	ctx := context.Background()

	if err := os.Remove(files.Dir()); err != nil {
		t.Fatal(err)
	}
	if h := c.Health(ctx); h.Status != "unhealthy" {
		t.Errorf("health without dir = %s", h.Status)
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := c.Health(ctx); h.Status != "healthy" {
		t.Errorf("health after start = %s (%s)", h.Status, h.Message)
	}
	if d := c.Describe(); d.Details != files.Dir() {
		t.Errorf("Describe().Details = %q", d.Details)
	}
}
