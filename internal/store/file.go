package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/Akari202/wordle/internal/pattern"
)

// File layout, little endian:
//
//	magic "WPMX" | version u8 | wordLen u8 | rows u32 | cols u32 |
//	fingerprint [32] | payload rows*cols bytes | blake2b-256(payload) [32]
const (
	fileMagic   = "WPMX"
	fileVersion = 1
	headerSize  = 4 + 1 + 1 + 4 + 4 + 32
	sumSize     = blake2b.Size256
)

// FileStore keeps one artifact in a single binary file.
type FileStore struct {
	Path string
}

// NewFileStore returns a Store writing to path. The directory is created on Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Location() string { return s.Path }

// Load reads the artifact at Path. The stored fingerprint is returned as-is.
func (s *FileStore) Load(ctx context.Context, _ [32]byte) (*Artifact, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return decodeArtifact(data)
}

// Save writes a atomically: temp file in the same directory, then rename.
func (s *FileStore) Save(ctx context.Context, a *Artifact) error {
	dir := filepath.Dir(s.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return writeFileAtomic(s.Path, encodeArtifact(a), 0o644)
}

func encodeArtifact(a *Artifact) []byte {
	payload := a.Matrix.Bytes()
	var buf bytes.Buffer
	buf.Grow(headerSize + len(payload) + sumSize)
	buf.WriteString(fileMagic)
	buf.WriteByte(fileVersion)
	buf.WriteByte(byte(a.WordLength))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(a.Matrix.Rows()))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(a.Matrix.Cols()))
	buf.Write(a.Fingerprint[:])
	buf.Write(payload)
	sum := blake2b.Sum256(payload)
	buf.Write(sum[:])
	return buf.Bytes()
}

func decodeArtifact(data []byte) (*Artifact, error) {
	if len(data) < headerSize+sumSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	if string(data[:4]) != fileMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:4])
	}
	if data[4] != fileVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, data[4])
	}
	a := &Artifact{WordLength: int(data[5])}
	rows := int(binary.LittleEndian.Uint32(data[6:10]))
	cols := int(binary.LittleEndian.Uint32(data[10:14]))
	copy(a.Fingerprint[:], data[14:headerSize])

	body := data[headerSize:]
	if uint64(len(body)-sumSize) != uint64(rows)*uint64(cols) {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %dx%d", ErrCorrupt, len(body)-sumSize, rows, cols)
	}
	payload, stored := body[:rows*cols], body[rows*cols:]
	if sum := blake2b.Sum256(payload); !bytes.Equal(sum[:], stored) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	m, err := pattern.MatrixFromBytes(rows, cols, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	a.Matrix = m
	return a, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
