package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"luckypick/internal/models"
	"luckypick/internal/providers"
	"luckypick/internal/storage/interfaces"
	"luckypick/internal/structures"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

const (
	keyPrefix   = "lottery_"
	defaultMode = 0644
)

// FileStore keeps one file per key under the storage dir, lottery_<key><ext>.
type FileStore struct {
	dir        string
	mode       os.FileMode
	compressor interfaces.CompressorInterface
	fallback   interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*FileStore, error) {
	if err := os.MkdirAll(conf.Storage.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	mode := os.FileMode(conf.Storage.Mode)
	if mode == 0 {
		mode = defaultMode
	}
	store := &FileStore{
		dir:        conf.Storage.Dir,
		mode:       mode,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
	// Files written before compression was toggled are still readable.
	if _, plain := compressor.(*PlainCompression); plain {
		if zc, err := NewZstdCompressor(); err == nil {
			store.fallback = zc
		}
	} else {
		store.fallback = &PlainCompression{}
	}
	return store, nil
}

func (f *FileStore) path(key string, c interfaces.CompressorInterface) string {
	return filepath.Join(f.dir, keyPrefix+key+c.Extension())
}

func (f *FileStore) Load(key string, dst any) (bool, error) {
	found, err := f.loadWith(key, dst, f.compressor)
	if found || err != nil || f.fallback == nil {
		return found, err
	}

	found, err = f.loadWith(key, dst, f.fallback)
	if found && err == nil {
		f.logger.Warnf(providers.TypeStorage, "Key %s found in %s format, it will be rewritten on next save", key, f.fallback.Extension())
	}
	return found, err
}

func (f *FileStore) loadWith(key string, dst any, c interfaces.CompressorInterface) (bool, error) {
	data, err := os.ReadFile(f.path(key, c))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		f.metrics.IncStorageErrors("read")
		return false, fmt.Errorf("read %s: %w: %v", key, models.ErrStorageUnavailable, err)
	}

	raw, err := c.Decompress(data)
	if err != nil {
		f.metrics.IncStorageErrors("read")
		return false, fmt.Errorf("decompress %s: %w: %v", key, models.ErrStorageCorrupt, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		f.metrics.IncStorageErrors("read")
		return false, fmt.Errorf("decode %s: %w: %v", key, models.ErrStorageCorrupt, err)
	}
	return true, nil
}

// Save replaces the whole document for key: tmp file, fsync, rename.
func (f *FileStore) Save(key string, value any) error {
	start := time.Now()
	defer func() {
		f.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	err := f.save(key, value)
	if err != nil {
		f.metrics.IncStorageErrors("write")
		return fmt.Errorf("write %s: %w: %v", key, models.ErrStorageUnavailable, err)
	}
	return nil
}

func (f *FileStore) save(key string, value any) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	fileName := f.path(key, f.compressor)
	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, f.mode)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}
	if f.fallback != nil {
		// drop the stale copy so a later format switch cannot resurrect it
		_ = os.Remove(f.path(key, f.fallback))
	}
	return nil
}

func (f *FileStore) Close() {
	f.compressor.Close()
	if f.fallback != nil {
		f.fallback.Close()
	}
}
