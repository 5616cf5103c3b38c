package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/forestaa/troll/internal/diag"
	"github.com/forestaa/troll/internal/layout"
)

// Схема полезной нагрузки. Увеличивается при каждом несовместимом
// изменении CachedReport, старые записи тогда просто игнорируются.
const reportCacheSchema uint16 = 1

// Digest keys cache entries by file content.
type Digest [sha256.Size]byte

// FileDigest hashes raw file bytes.
func FileDigest(data []byte) Digest {
	return sha256.Sum256(data)
}

// ReportCache хранит готовые отчёты по хешу содержимого файла.
// Потокобезопасен, один экземпляр обслуживает параллельный разбор.
type ReportCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedReport is the cached outcome of one analysis: the flattened blocks
// together with the diagnostics that came out of building them.
type CachedReport struct {
	Schema uint16
	Path   string
	Blocks []layout.Block
	Diags  []diag.Diagnostic
}

// OpenReportCache opens the cache at the user cache directory, which on
// Linux resolves to $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenReportCache(app string) (*ReportCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return OpenReportCacheAt(filepath.Join(base, app))
}

// OpenReportCacheAt opens the cache at an explicit directory.
func OpenReportCacheAt(dir string) (*ReportCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ReportCache{dir: dir}, nil
}

func (c *ReportCache) entryPath(key Digest) string {
	// подкаталог, чтобы кэш было удобно чистить руками
	return filepath.Join(c.dir, "reports", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a report, replacing the entry atomically.
func (c *ReportCache) Put(key Digest, report *CachedReport) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(entry), "wip-*")
	if err != nil {
		return err
	}
	// после удачного Rename файла уже нет, ошибка удаления не интересна
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), entry)
}

// Get reads a report. A missing entry is not an error.
func (c *ReportCache) Get(key Digest, out *CachedReport) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.entryPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// Purge wipes the cache directory.
func (c *ReportCache) Purge() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовываем и удаляем, чтобы параллельные читатели не увидели
	// наполовину удалённый каталог
	doomed := fmt.Sprintf("%s.gone-%d", c.dir, time.Now().UnixNano())
	if err := os.Rename(c.dir, doomed); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(doomed)
}
