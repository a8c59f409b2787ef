// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// WatchFunc starts watching a file, calling onChange on every change, and
// returns a function that stops the watch. config.WatchConfigFile has this
// shape.
type WatchFunc func(path string, onChange func()) (stop func() error, err error)

// FileWatchService calls onChange whenever a file is written. It is used to
// reload a CSV catalog as soon as it is replaced on disk.
type FileWatchService struct {
	path     string
	watch    WatchFunc
	onChange func()
	logger   zerolog.Logger
}

// NewFileWatchService creates a watch service for path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFileWatchService(path string, watch WatchFunc, onChange func(), logger zerolog.Logger) *FileWatchService {
	return &FileWatchService{
		path:     path,
		watch:    watch,
		onChange: onChange,
		logger:   logger.With().Str("service", "file-watch").Str("path", path).Logger(),
	}
}

// Serve implements suture.Service. A failure to start the watch is returned
// so the supervisor retries with backoff, e.g. until the file exists.
func (s *FileWatchService) Serve(ctx context.Context) error {
	stop, err := s.watch(s.path, func() {
		s.logger.Info().Msg("file changed")
		s.onChange()
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.path, err)
	}

	s.logger.Info().Msg("watching file")
	<-ctx.Done()

	if err := stop(); err != nil {
		s.logger.Debug().Err(err).Msg("stop watching")
	}
	return ctx.Err()
}

// String implements fmt.Stringer for suture's logs.
func (s *FileWatchService) String() string {
	return "file-watch"
}
