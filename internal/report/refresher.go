package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// FileRefresher regenerates report files under a directory after each
// sale. It satisfies the engine's Refresher contract; failures are the
// caller's to log, never to retry.
type FileRefresher struct {
	db  *store.Store
	dir string
}

// NewFileRefresher writes standings.txt, squads.txt, sales.txt and
// squads.csv under dir on every refresh.
func NewFileRefresher(db *store.Store, dir string) *FileRefresher {
	return &FileRefresher{db: db, dir: dir}
}

func (f *FileRefresher) Refresh(ctx context.Context) error {
	snap, err := BuildSnapshot(ctx, f.db)
	if err != nil {
		return fmt.Errorf("report: build snapshot: %w", err)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	files := []struct {
		name   string
		render func(snap Snapshot) ([]byte, error)
	}{
		{"standings.txt", renderBytes(WriteStandings)},
		{"squads.txt", renderBytes(WriteSquads)},
		{"sales.txt", renderBytes(WriteSales)},
		{"squads.csv", renderBytes(ExportCSV)},
	}
	for _, file := range files {
		data, err := file.render(snap)
		if err != nil {
			return fmt.Errorf("report: render %s: %w", file.name, err)
		}
		if err := writeAtomic(filepath.Join(f.dir, file.name), data); err != nil {
			return fmt.Errorf("report: write %s: %w", file.name, err)
		}
	}
	return nil
}

func renderBytes(render func(w io.Writer, snap Snapshot) error) func(Snapshot) ([]byte, error) {
	return func(snap Snapshot) ([]byte, error) {
		var buf bytes.Buffer
		if err := render(&buf, snap); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// writeAtomic replaces path via a sibling temp file so report readers
// never observe a half-written file.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
