package graphio

import (
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

const BZIP2_EXTENSION = ".bz2"

func isBzip2(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), BZIP2_EXTENSION)
}

type multiCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

// Close closes in order and returns the first error.
func (m *multiCloser) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenReader opens path, decompressing it on the fly when it ends in .bz2.
func OpenReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !isBzip2(path) {
		return f, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &multiCloser{Reader: bz, closers: []io.Closer{bz, f}}, nil
}

// CreateWriter creates path, compressing everything written when it ends in .bz2.
// the bzip2 stream is only complete after Close.
func CreateWriter(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !isBzip2(path) {
		return f, nil
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &multiCloser{Writer: bz, closers: []io.Closer{bz, f}}, nil
}
