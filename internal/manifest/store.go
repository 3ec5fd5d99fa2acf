package manifest

import (
	"errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"mdpuppy/internal/logging"
	"os"
	"path/filepath"
	"time"
)

var ErrNotFound = errors.New("not found")

// Store remembers what the previous build wrote so the next one can report
// what changed.
type Store struct {
	db  *bolt.DB
	log *zap.Logger
}

type OpenOptions struct {
	Path   string // e.g. ".mdpuppy/manifest.db"
	Logger *zap.Logger
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("manifest: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, err
	}
	// 另一个构建进程持有锁时，一秒后放弃
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, log: logging.OrNop(opt.Logger)}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
