package gazetteer

import (
	"compress/bzip2"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotSchema is the version of the snapshot layout. Snapshots written
// with another version are rejected.
const snapshotSchema = 1

// WriteSnapshot parses the data files selected by opts and writes them to w
// as a msgpack snapshot that WithSnapshot can load.
func WriteSnapshot(w io.Writer, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	ds, err := loadSource(cfg)
	if err != nil {
		return err
	}
	// Build once so that a snapshot of corrupt data is never written.
	if _, err := build(ds, cfg); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return msgpack.NewEncoder(w).Encode(ds)
}

// SaveSnapshot writes a snapshot to file, replacing it atomically.
func SaveSnapshot(file string, opts ...Option) (err error) {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("warning: failed to remove temp file: %v", rmErr)
		}
	}()

	if err := WriteSnapshot(f, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), file)
}

// readSnapshot decodes a snapshot and checks its schema version.
func readSnapshot(r io.Reader) (*dataset, error) {
	var ds dataset
	if err := msgpack.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if ds.Schema != snapshotSchema {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrSnapshotVersion, ds.Schema, snapshotSchema)
	}
	return &ds, nil
}

// loadSnapshot reads the snapshot at file, decompressing it when the name
// ends in ".bz2".
func loadSnapshot(file string) (*dataset, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer fh.Close()

	var r io.Reader = fh
	if strings.HasSuffix(file, ".bz2") {
		r = bzip2.NewReader(fh)
	}
	ds, err := readSnapshot(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	log.Printf("info: loaded snapshot %s", file)
	return ds, nil
}

// loadSource returns the dataset selected by cfg: the snapshot when one is
// configured, the data files otherwise.
func loadSource(cfg *GazetteerConfig) (*dataset, error) {
	if cfg.SnapshotPath != "" {
		return loadSnapshot(cfg.SnapshotPath)
	}
	return loadDataset(cfg.DataDir)
}
