package lexer

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// FileMap is a read-only memory mapping of one source file. The file is
// mapped once, read-only, and its contents are copied into a byte slice
// when it is opened; the lexer reads from that copy.
type FileMap struct {
	path   string
	reader *mmap.ReaderAt
	data   []byte
}

// OpenFileMap maps path read-only and eagerly copies it into an in-process
// byte slice, which Data returns; the mmap.ReaderAt handle stays open
// until Close releases it.
func OpenFileMap(path string) (*FileMap, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	length := r.Len()
	buf := make([]byte, length)
	if _, err := r.ReadAt(buf, 0); err != nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &FileMap{path: path, reader: r, data: buf}, nil
}

// Data returns the mapped file contents.
func (m *FileMap) Data() []byte { return m.data }

// Path returns the path the mapping was opened from.
func (m *FileMap) Path() string { return m.path }

// Close releases the mapping. Safe to call once; the lexer state that owns
// a FileMap must close it exactly once regardless of whether lexing
// succeeded, mirroring lexerStateUninit's unconditional munmap.
func (m *FileMap) Close() error {
	if m.reader == nil {
		return nil
	}
	err := m.reader.Close()
	m.reader = nil
	return err
}
