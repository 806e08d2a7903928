package config

import (
	"errors"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
)

// Loader re-reads the settings file on demand. A missing file yields
// Default; a broken file keeps the last good settings and returns the error.
type Loader struct {
	Path string

	mu   sync.Mutex
	last *Settings
	log  zerolog.Logger
}

func NewLoader(path string, log zerolog.Logger) *Loader {
	return &Loader{Path: path, log: log}
}

func (l *Loader) Reload() (*Settings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, err := LoadFromFile(l.Path)
	switch {
	case err == nil:
		l.last = s
		return s, nil
	case errors.Is(err, fs.ErrNotExist):
		l.log.Debug().Str("path", l.Path).Msg("settings file not found, using defaults")
		l.last = Default()
		return l.last, nil
	case l.last != nil:
		l.log.Warn().Err(err).Str("path", l.Path).Msg("settings reload failed, keeping previous")
		return l.last, err
	default:
		return nil, err
	}
}
