// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package store persists computed recommendation responses in BadgerDB so a
// restarted process can answer repeat queries for an unchanged catalog
// without rebuilding the term-weight index.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfmate/internal/recommend"
)

// resultKeyPrefix namespaces recommendation entries within the database.
const resultKeyPrefix = "rec:"

// Config configures the Badger result store.
type Config struct {
	// Path is the database directory. Empty means in-memory.
	Path string

	// TTL is how long a stored response lives. Zero disables expiry.
	// Default: 24h
	TTL time.Duration

	// GCInterval is how often value-log garbage collection runs.
	// Default: 10m
	GCInterval time.Duration
}

// BadgerResultStore implements recommend.ResultStore on BadgerDB.
type BadgerResultStore struct {
	db     *badger.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// Open opens (or creates) the store described by cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*BadgerResultStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(badgerLogger{logger: logger.With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open result store: %w", err)
	}
	return NewBadgerResultStore(db, cfg.TTL, logger), nil
}

// NewBadgerResultStore wraps an open database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerResultStore(db *badger.DB, ttl time.Duration, logger zerolog.Logger) *BadgerResultStore {
	return &BadgerResultStore{
		db:     db,
		ttl:    ttl,
		logger: logger.With().Str("component", "result_store").Logger(),
	}
}

// Get returns the stored response for key.
func (s *BadgerResultStore) Get(ctx context.Context, key string) (*recommend.Response, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var resp recommend.Response
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(resultKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &resp)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get stored result: %w", err)
	}
	return &resp, true, nil
}

// Put stores resp under key with the configured TTL.
func (s *BadgerResultStore) Put(ctx context.Context, key string, resp *recommend.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(resultKeyPrefix+key), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set result: %w", err)
		}
		return nil
	})
}

// PurgeExcept deletes every stored response whose key does not begin with
// catalogHash and returns how many were removed.
func (s *BadgerResultStore) PurgeExcept(ctx context.Context, catalogHash string) (int, error) {
	prefix := []byte(resultKeyPrefix)
	keep := []byte(resultKeyPrefix + catalogHash + "|")

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().KeyCopy(nil)
			if !bytes.HasPrefix(key, keep) {
				stale = append(stale, key)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("list stored results: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range stale {
		if err := wb.Delete(key); err != nil {
			return 0, fmt.Errorf("delete stored result: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush deletes: %w", err)
	}
	return len(stale), nil
}

// Count returns the number of live stored responses.
func (s *BadgerResultStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(resultKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC runs value-log garbage collection until nothing is reclaimed.
func (s *BadgerResultStore) RunGC() {
	for {
		if err := s.db.RunValueLogGC(0.5); err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) {
				s.logger.Debug().Err(err).Msg("value log gc stopped")
			}
			return
		}
	}
}

// Close closes the underlying database.
func (s *BadgerResultStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's logging into zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
