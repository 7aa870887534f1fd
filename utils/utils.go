package utils

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

var gzipMagic = []byte{0x1f, 0x8b}

// OutputJSON writes the json representation of stats to an io.Writer
func OutputJSON(writer io.Writer, stats interface{}) error {
	b, err := json.MarshalIndent(stats, "", "\t")
	if err != nil {
		return err
	}
	if _, err = writer.Write(b); err != nil {
		return err
	}
	if w, ok := writer.(*bufio.Writer); ok {
		return w.Flush()
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type fileWriter struct {
	*bufio.Writer
	f *os.File
}

func (w *fileWriter) Close() error {
	if err := w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// NewWriter returns a new io.WriteCloser given an output file name. If the
// file name is '-' os.Stdout is returned and closing it is a no-op.
func NewWriter(output string) (io.WriteCloser, error) {
	if output == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", output)
	}
	return &fileWriter{bufio.NewWriter(f), f}, nil
}

// Open opens an input file name, '-' standing for os.Stdin.
func Open(input string) (io.ReadCloser, error) {
	if input == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", input)
	}
	return f, nil
}

// Decompress returns a reader over the gzip-decompressed content of r if r
// starts with the gzip magic number, and over r unchanged otherwise.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 1<<16)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) < len(gzipMagic) || magic[0] != gzipMagic[0] || magic[1] != gzipMagic[1] {
		return br, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, errors.Wrap(err, "opening gzip stream")
	}
	return gz, nil
}
