package jsonl

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"

	"go.trai.ch/zerr"
)

// Line is one complete record of a stream.
type Line struct {
	// Number is 1-based.
	Number int
	Data   []byte
}

// Lines yields every complete, non-blank line of r. A trailing fragment without
// a newline is an interrupted write and is skipped.
func Lines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		br := bufio.NewReaderSize(r, 1<<16)
		for number := 1; ; number++ {
			data, err := br.ReadBytes('\n')
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Line{Number: number}, zerr.With(zerr.Wrap(err, "failed to read stream"), "line", number))
				return
			}
			data = bytes.TrimSpace(data)
			if len(data) == 0 {
				continue
			}
			if !yield(Line{Number: number, Data: data}, nil) {
				return
			}
		}
	}
}
