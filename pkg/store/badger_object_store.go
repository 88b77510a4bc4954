package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/utkarsh5026/grut/pkg/common/logger"
	"github.com/utkarsh5026/grut/pkg/objects"
)

const badgerKeyPrefix = "obj:"

// BadgerObjectStore keeps objects in a badger key/value database under keys
// "obj:<digest>". Badger handles its own on-disk compression, so values are
// stored raw.
type BadgerObjectStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadgerObjectStore opens (or creates) the database in dir.
func OpenBadgerObjectStore(dir string, opts Options) (*BadgerObjectStore, error) {
	log := logger.Component("store").With("backend", BackendBadger)

	bopts := badger.DefaultOptions(dir).WithLogger(badgerLogger{log})
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{log})
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, internal("open", fmt.Errorf("opening badger object store: %w", err))
	}

	return &BadgerObjectStore{db: db, logger: log}, nil
}

func (s *BadgerObjectStore) makeKey(digest objects.Digest) []byte {
	return []byte(badgerKeyPrefix + digest.String())
}

// Put checks for the key and sets it inside one read-write transaction.
func (s *BadgerObjectStore) Put(content []byte) (objects.Digest, error) {
	digest := objects.Sum(content)
	key := s.makeKey(digest)

	stored := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		stored = true
		return txn.Set(key, append([]byte(nil), content...))
	})
	if err != nil {
		return "", internal("put", err)
	}

	if stored {
		s.logger.Debug("object stored", "digest", digest, "size", len(content))
	} else {
		s.logger.Debug("object already stored", "digest", digest)
	}
	return digest, nil
}

// Get returns a copy of the stored value.
func (s *BadgerObjectStore) Get(digest objects.Digest) ([]byte, error) {
	if err := digest.Validate(); err != nil {
		return nil, invalidDigest("get", digest, err)
	}

	var content []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.makeKey(digest))
		if err != nil {
			return err
		}
		content, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound("get", digest)
	}
	if err != nil {
		return nil, internal("get", err)
	}
	if content == nil {
		content = []byte{}
	}
	return content, nil
}

// Has reports whether digest is present.
func (s *BadgerObjectStore) Has(digest objects.Digest) (bool, error) {
	if err := digest.Validate(); err != nil {
		return false, invalidDigest("has", digest, err)
	}

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(s.makeKey(digest))
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, internal("has", err)
	}
	return true, nil
}

// ForEach iterates keys only.
func (s *BadgerObjectStore) ForEach(fn func(objects.Digest) error) error {
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(badgerKeyPrefix)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().KeyCopy(nil))
			digest := objects.Digest(strings.TrimPrefix(key, badgerKeyPrefix))
			if err := fn(digest); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return internal("for_each", err)
	}
	return nil
}

// Close flushes and closes the database.
func (s *BadgerObjectStore) Close() error {
	if err := s.db.Close(); err != nil {
		return internal("close", err)
	}
	return nil
}

// badgerLogger routes badger's printf-style logging into slog. Badger is
// chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	log *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
