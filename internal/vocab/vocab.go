// Package vocab loads tiktoken BPE rank files from a local directory.
//
// Rank files are looked up by the base name of the URL tiktoken-go would
// download them from, optionally zstd-compressed:
//
//	<dir>/o200k_base.tiktoken
//	<dir>/o200k_base.tiktoken.zst
//
// Register a Loader with tiktoken.SetBpeLoader before the first encoding is
// requested.
package vocab

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/pkoukk/tiktoken-go"
	"github.com/zeebo/blake3"
)

// Common errors.
var (
	ErrNotFound         = errors.New("vocabulary file not found")
	ErrChecksumMismatch = errors.New("vocabulary checksum mismatch")
	ErrMalformed        = errors.New("malformed vocabulary file")
)

// zstdSuffix marks a compressed rank file.
const zstdSuffix = ".zst"

// zstdDecoder is shared by all loaders; zstd.Decoder is safe for concurrent
// DecodeAll calls.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("vocab: zstd decoder initialization failed: " + err.Error())
	}
}

// Loader is a tiktoken.BpeLoader reading rank files from a directory.
type Loader struct {
	dir       string
	checksums map[string][32]byte
	fallback  tiktoken.BpeLoader
}

// NewLoader creates a loader over dir.
//
// checksums maps rank file names to the BLAKE3-256 digest of their
// uncompressed contents; files without an entry are not verified. When a file
// is missing from dir the request goes to fallback, or fails with ErrNotFound
// if fallback is nil.
func NewLoader(dir string, checksums map[string][32]byte, fallback tiktoken.BpeLoader) *Loader {
	return &Loader{
		dir:       dir,
		checksums: checksums,
		fallback:  fallback,
	}
}

// LoadTiktokenBpe implements tiktoken.BpeLoader.
func (l *Loader) LoadTiktokenBpe(tiktokenBpeFile string) (map[string]int, error) {
	name := path.Base(tiktokenBpeFile)

	data, err := l.read(name)
	if errors.Is(err, ErrNotFound) && l.fallback != nil {
		return l.fallback.LoadTiktokenBpe(tiktokenBpeFile)
	}
	if err != nil {
		return nil, err
	}

	if want, ok := l.checksums[name]; ok {
		if got := blake3.Sum256(data); got != want {
			return nil, fmt.Errorf("%w: %s: got %x, want %x", ErrChecksumMismatch, name, got, want)
		}
	}

	ranks, err := ParseRanks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ranks, nil
}

// read returns the uncompressed contents of name, preferring the plain file.
func (l *Loader) read(name string) ([]byte, error) {
	plain := filepath.Join(l.dir, name)

	//nolint:gosec // Reading vocabularies from a configured directory is intentional.
	data, err := os.ReadFile(plain)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	//nolint:gosec // Reading vocabularies from a configured directory is intentional.
	compressed, err := os.ReadFile(plain + zstdSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, l.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	data, err = zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress %s: %w", name, err)
	}
	return data, nil
}

// ParseRanks parses a tiktoken rank file: one "<base64 token> <rank>" pair
// per line.
func ParseRanks(data []byte) (map[string]int, error) {
	ranks := make(map[string]int, bytes.Count(data, []byte{'\n'})+1)

	for lineNo, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}

		sep := bytes.IndexByte(line, ' ')
		if sep <= 0 {
			return nil, fmt.Errorf("%w: line %d: missing rank", ErrMalformed, lineNo+1)
		}

		token, err := base64.StdEncoding.DecodeString(string(line[:sep]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, lineNo+1, err)
		}
		rank, err := strconv.Atoi(string(line[sep+1:]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, lineNo+1, err)
		}

		ranks[string(token)] = rank
	}

	return ranks, nil
}
