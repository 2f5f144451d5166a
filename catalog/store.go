// SPDX-License-Identifier: MIT
// Package: graphkey/catalog
//
// store.go — badger-backed Set.
//
// Layout:
//
//	stateKey              => format version (uint32, big endian)
//	keyPrefix, Key.Bytes  => label of the first graph seen with that key
//
// Keys sort by Key.Compare within the prefix, so Each iterates in the same
// order as Index.

package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/graphkey/canon"
)

const (
	storeVersion = uint32(1)
	keyPrefix    = byte(0x01)

	// maxConflictRetries bounds TryAdd retries after badger.ErrConflict.
	maxConflictRetries = 8
)

var stateKey = []byte{0x00, 0x00, 0x01}

// StoreOptions configures Open.
type StoreOptions struct {
	// Path is the database directory. Empty means in-memory.
	Path string

	// ReadOnly opens an existing database without write access.
	ReadOnly bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool
}

// Store is a persistent Set. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	db *badger.DB
}

// Open opens or creates the store described by opts.
func Open(opts StoreOptions) (*Store, error) {
	if opts.Path == "" && opts.ReadOnly {
		return nil, errors.Wrap(ErrBadStore, "Path must be specified for a read-only store")
	}

	dbOpts := badger.DefaultOptions(opts.Path)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.SyncWrites = opts.SyncWrites
	dbOpts.Logger = klogAdapter{}
	dbOpts.MetricsEnabled = false
	if opts.Path == "" {
		dbOpts.InMemory = true
	}
	// Badger for windows does not support read-only mode.
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: open %q", opts.Path)
	}
	s := &Store{db: db}
	if err = s.checkVersion(opts.ReadOnly); err != nil {
		_ = db.Close()
		return nil, err
	}

	klog.V(2).Infof("catalog: opened store path=%q readonly=%v", opts.Path, opts.ReadOnly)
	return s, nil
}

func (s *Store) checkVersion(readOnly bool) error {
	var vers uint32
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 4 {
				return errors.Wrapf(ErrBadStore, "state record has %d bytes", len(val))
			}
			vers = binary.BigEndian.Uint32(val)
			return nil
		})
	})

	switch {
	case err == badger.ErrKeyNotFound && readOnly:
		return errors.Wrap(ErrBadStore, "not a graphkey catalog")
	case err == badger.ErrKeyNotFound:
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Set(stateKey, binary.BigEndian.AppendUint32(nil, storeVersion))
		})
	case err != nil:
		return err
	case vers != storeVersion:
		return errors.Wrapf(ErrBadStore, "format version %d, want %d", vers, storeVersion)
	}
	return nil
}

func dbKey(k canon.Key) []byte {
	return append([]byte{keyPrefix}, k.Bytes()...)
}

// TryAdd implements Set.
func (s *Store) TryAdd(k canon.Key, label string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return false, ErrClosed
	}

	key := dbKey(k)
	for attempt := 1; ; attempt++ {
		added := false
		err := s.db.Update(func(txn *badger.Txn) error {
			_, err := txn.Get(key)
			if err == nil {
				return nil
			}
			if err != badger.ErrKeyNotFound {
				return err
			}
			added = true
			return txn.Set(key, []byte(label))
		})
		if err == badger.ErrConflict && attempt < maxConflictRetries {
			klog.V(3).Infof("catalog: conflict on %s, retry %d", k, attempt)
			continue
		}
		if err != nil {
			return false, errors.Wrap(err, "catalog: TryAdd")
		}
		return added, nil
	}
}

// Lookup implements Set.
func (s *Store) Lookup(k canon.Key) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return "", false, ErrClosed
	}

	var label []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey(k))
		if err != nil {
			return err
		}
		label, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "catalog: Lookup")
	}
	return string(label), true, nil
}

// Count implements Set. It walks the key space without loading values.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.scan(false, func(canon.Key, string) error {
		n++
		return nil
	})
	return n, err
}

// Each visits every entry in ascending key order. A non-nil error from fn
// stops the walk and is returned.
func (s *Store) Each(fn func(k canon.Key, label string) error) error {
	return s.scan(true, fn)
}

func (s *Store) scan(withValues bool, fn func(canon.Key, string) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}

	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: withValues,
			PrefetchSize:   100,
			Prefix:         []byte{keyPrefix},
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k, err := canon.KeyFromBytes(item.Key()[1:])
			if err != nil {
				return errors.Wrapf(ErrBadStore, "corrupt key: %v", err)
			}
			var label string
			if withValues {
				v, err := item.ValueCopy(nil)
				if err != nil {
					return err
				}
				label = string(v)
			}
			if err = fn(k, label); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close flushes and closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	klog.V(2).Info("catalog: store closed")
	return err
}

// klogAdapter routes badger's internal logging to klog.
type klogAdapter struct{}

func (klogAdapter) Errorf(format string, args ...interface{}) {
	klog.Errorf("badger: "+format, args...)
}

func (klogAdapter) Warningf(format string, args ...interface{}) {
	klog.Warningf("badger: "+format, args...)
}

func (klogAdapter) Infof(format string, args ...interface{}) {
	klog.V(3).Infof("badger: "+format, args...)
}

func (klogAdapter) Debugf(format string, args ...interface{}) {
	klog.V(4).Infof("badger: "+format, args...)
}
