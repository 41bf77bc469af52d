package textual

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Source provides text to the loaders of this package. The package ships with four
// implementations:
//
//   - [Text]: a literal string
//   - [Path]: a file on disk, read as UTF-8. It is opened when a load starts and closed
//     once the load finishes, even if the consumer stops iterating early.
//   - [Lines]: pre-split lines, joined with a line feed.
//   - [Reader]: an already open [io.Reader]. It is read but never closed.
//
// Custom implementations return an [io.ReadCloser] from Open. The loader calls Close
// exactly once when it is done with the reader.
type Source interface {
	Open() (io.ReadCloser, error)
}

// Text is a Source of literal text.
type Text string

func (t Text) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(t))), nil
}

// Path is a Source reading a file.
type Path string

func (p Path) Open() (io.ReadCloser, error) {
	fp, err := os.Open(string(p))
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", string(p), err)
	}

	return fp, nil
}

// Lines is a Source of lines that are joined with a line feed.
type Lines []string

func (l Lines) Open() (io.ReadCloser, error) {
	return Text(strings.Join(l, "\n")).Open()
}

type readerSource struct {
	reader io.Reader
}

// Reader adapts an open reader to a Source. The reader is owned by the caller and is
// never closed.
func Reader(r io.Reader) Source {
	return readerSource{reader: r}
}

func (r readerSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(r.reader), nil
}

// ReadText returns the full text of a Source.
func ReadText(source Source) (string, error) {
	if text, ok := source.(Text); ok {
		return string(text), nil
	}

	reader, err := source.Open()
	if err != nil {
		return "", err
	}

	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}

	return string(content), nil
}
