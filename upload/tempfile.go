package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	apperrors "github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/storage/local"
	"github.com/kbukum/scribe/util"
)

// maxCreateAttempts bounds the timestamp bumps on name collisions.
const maxCreateAttempts = 64

// TempFile is an upload materialized in the recordings directory. It lives
// until Release is called.
type TempFile struct {
	// Name is "<arrival-unix-nanos>-<sanitized original name>".
	Name string
	// Path is the absolute path handed to providers.
	Path string

	release func()
}

// Release deletes the file. It is safe to call more than once.
func (f *TempFile) Release() {
	if f != nil && f.release != nil {
		f.release()
	}
}

// TempFiles creates and removes request-scoped files in local storage.
type TempFiles struct {
	store *local.Storage
	log   *logger.Logger
	now   func() time.Time
}

// NewTempFiles returns a TempFiles backed by store.
func NewTempFiles(store *local.Storage, log *logger.Logger) *TempFiles {
	if log == nil {
		log = logger.NewNop()
	}
	return &TempFiles{store: store, log: log.WithComponent("recordings"), now: time.Now}
}

// Dir returns the absolute recordings directory.
func (t *TempFiles) Dir() string { return t.store.BasePath() }

// Save writes r to a new, uniquely named file. Creation is exclusive; on a
// name collision the timestamp is bumped and the create retried. The file
// must exist after the write or a StorageFailure is returned. On error
// nothing is left behind.
func (t *TempFiles) Save(ctx context.Context, original string, r io.Reader) (*TempFile, error) {
	base := util.SanitizeFileName(original)
	nanos := t.now().UnixNano()

	var (
		name string
		f    *os.File
		err  error
	)
	for attempt := 0; ; attempt++ {
		name = fmt.Sprintf("%d-%s", nanos, base)
		f, err = t.store.CreateExclusive(name)
		if err == nil {
			break
		}
		if !errors.Is(err, local.ErrExists) || attempt == maxCreateAttempts {
			return nil, apperrors.StorageFailure(err)
		}
		nanos++
	}

	tf := &TempFile{Name: name, Path: t.store.Path(name)}
	tf.release = sync.OnceFunc(func() { t.remove(ctx, name) })

	_, copyErr := io.Copy(f, r)
	if err := errors.Join(copyErr, f.Close()); err != nil {
		tf.Release()
		return nil, apperrors.StorageFailure(err)
	}

	ok, err := t.store.Exists(ctx, name)
	if err != nil || !ok {
		if err == nil {
			err = fmt.Errorf("%s missing after write", name)
		}
		t.log.WithContext(ctx).Error("File was not saved", logger.Fields(logger.FieldFile, name, logger.FieldError, err.Error()))
		tf.Release()
		return nil, apperrors.StorageFailure(err)
	}

	t.log.WithContext(ctx).Debug("Upload stored", logger.Fields(logger.FieldFile, name))
	return tf, nil
}

// savedName matches names produced by Save.
var savedName = regexp.MustCompile(`^\d+-.+$`)

// Sweep deletes files a previous process saved and never released. Only
// top-level files named like Save's output are touched.
func (t *TempFiles) Sweep(ctx context.Context) (int, error) {
	files, err := t.store.List(ctx, "")
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, fi := range files {
		if !savedName.MatchString(fi.Path) {
			continue
		}
		if err := t.store.Delete(ctx, fi.Path); err != nil {
			t.log.Warn("Failed to remove stale upload", logger.ErrorFields("sweep", err))
			continue
		}
		removed++
	}
	return removed, nil
}

func (t *TempFiles) remove(ctx context.Context, name string) {
	if err := t.store.Delete(context.WithoutCancel(ctx), name); err != nil {
		t.log.WithContext(ctx).Warn("Failed to delete upload", logger.Fields(
			logger.FieldFile, name,
			logger.FieldError, err.Error(),
		))
	}
}
