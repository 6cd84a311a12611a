// Package library wires configuration, logging and vocabulary loading into
// the process-wide boundary used by the C entry points.
package library

import (
	"fmt"
	"os"
	"sync"

	"github.com/born-ml/harmonyffi/internal/config"
	"github.com/born-ml/harmonyffi/internal/ffi"
	"github.com/born-ml/harmonyffi/internal/harmony"
	"github.com/born-ml/harmonyffi/internal/vocab"
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

var (
	shared     *ffi.Boundary
	sharedOnce sync.Once
)

// Boundary returns the process-wide boundary, initializing it on first use
// from the environment.
func Boundary(alloc ffi.Allocator) *ffi.Boundary {
	sharedOnce.Do(func() {
		shared = New(alloc, os.Getenv)
	})
	return shared
}

// New builds a boundary from the configuration found through getenv.
//
// Configuration problems are not fatal: they surface as the
// encoding-unavailable code of every entry point, since the encoding cannot
// be acquired as configured.
func New(alloc ffi.Allocator, getenv func(string) string) *ffi.Boundary {
	cfg, err := config.Load(getenv)
	if err != nil {
		return ffi.New(alloc, unavailable(fmt.Errorf("invalid configuration: %w", err)))
	}

	l, err := cfg.Logger()
	if err != nil {
		return ffi.New(alloc, unavailable(err))
	}
	ffi.SetLogger(l)

	loader, err := vocabularyLoader(cfg)
	if err != nil {
		l.Error("vocabulary configuration rejected", zap.Error(err))
		return ffi.New(alloc, unavailable(err))
	}
	if loader != nil {
		tiktoken.SetBpeLoader(loader)
		l.Info("offline vocabulary enabled", zap.String("dir", cfg.Vocab.Dir))
	}

	return ffi.New(alloc, loggedLoader(l, ffi.LoadGptOss))
}

// vocabularyLoader returns the offline loader described by cfg, or nil when
// no vocabulary directory is configured.
func vocabularyLoader(cfg *config.Config) (tiktoken.BpeLoader, error) {
	if cfg.Vocab.Dir == "" {
		return nil, nil
	}

	sums := make(map[string][32]byte, len(cfg.Vocab.BLAKE3))
	for name, digest := range cfg.Vocab.BLAKE3 {
		sum, err := config.DecodeDigest(digest)
		if err != nil {
			return nil, fmt.Errorf("vocab.blake3[%s]: %w", name, err)
		}
		sums[name] = sum
	}

	return vocab.NewLoader(cfg.Vocab.Dir, sums, tiktoken.NewDefaultBpeLoader()), nil
}

// unavailable is a loader that always fails with err.
func unavailable(err error) ffi.EncodingLoader {
	return func() (ffi.Renderer, error) {
		return nil, err
	}
}

// loggedLoader logs encoding load failures at warn level.
func loggedLoader(l *zap.Logger, load ffi.EncodingLoader) ffi.EncodingLoader {
	return func() (ffi.Renderer, error) {
		r, err := load()
		if err != nil {
			l.Warn("failed to load harmony encoding",
				zap.String("encoding", string(harmony.HarmonyGptOss)),
				zap.Error(err),
			)
		}
		return r, err
	}
}
