// db/store_file.go
package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"lab_loan_tool/models"
)

// FileStore keeps one JSON document per collection in a directory.
type FileStore struct{ dir string }

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Dir() string { return f.dir }

func (f *FileStore) path(d models.Document) string {
	return filepath.Join(f.dir, string(d)+".json")
}

// Load reads every document; a missing file is an empty collection.
func (f *FileStore) Load(ctx context.Context) (*models.Snapshot, error) {
	s := models.NewSnapshot()
	for _, d := range models.Documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(f.path(d))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", d, err)
		}
		if err := DecodeDocument(s, d, b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save rewrites the given documents (all when none given) as one unit.
//
// Every document is first written and synced to a temp file. The temp files
// are then renamed over their targets in models.Documents order; when a
// rename fails the documents already replaced are put back, so disk keeps
// the previous state.
func (f *FileStore) Save(ctx context.Context, s *models.Snapshot, docs ...models.Document) error {
	encoded, err := encodeAll(s, docs)
	if err != nil {
		return err
	}

	staged := make([]stagedDoc, 0, len(encoded))
	defer func() {
		for _, sd := range staged {
			if sd.tmp != "" {
				_ = os.Remove(sd.tmp)
			}
		}
	}()
	for _, d := range models.Documents {
		b, ok := encoded[d]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		tmp, err := writeTemp(f.path(d), b)
		if err != nil {
			return fmt.Errorf("write %s: %w", d, err)
		}
		staged = append(staged, stagedDoc{doc: d, tmp: tmp})
	}

	for i := range staged {
		sd := &staged[i]
		path := f.path(sd.doc)
		prev, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.rollback(staged[:i])
			return fmt.Errorf("write %s: %w", sd.doc, err)
		}
		sd.prev, sd.existed = prev, err == nil
		if err := os.Rename(sd.tmp, path); err != nil {
			f.rollback(staged[:i])
			return fmt.Errorf("write %s: %w", sd.doc, err)
		}
		sd.tmp = ""
	}
	return nil
}

// stagedDoc is one document of a Save in progress.
type stagedDoc struct {
	doc     models.Document
	tmp     string // 已 rename 后置空
	prev    []byte
	existed bool
}

// rollback puts back the previous content of documents already renamed.
func (f *FileStore) rollback(done []stagedDoc) {
	for _, sd := range done {
		path := f.path(sd.doc)
		if !sd.existed {
			_ = os.Remove(path)
			continue
		}
		if tmp, err := writeTemp(path, sd.prev); err == nil {
			if err := os.Rename(tmp, path); err != nil {
				_ = os.Remove(tmp)
			}
		}
	}
}

func (f *FileStore) Close() error { return nil }

// writeTemp writes data to a synced temp file next to path and returns its name.
func writeTemp(path string, data []byte) (name string, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return "", err
	}
	if err = tmp.Sync(); err != nil {
		return "", err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	return tmpName, nil
}
