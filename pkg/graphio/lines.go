package graphio

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

type lineReader struct {
	br     *bufio.Reader
	lineNo int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, 1<<16)}
}

// next returns the next line without its line terminator, io.EOF once the input is exhausted.
func (lr *lineReader) next() (string, error) {
	line, err := lr.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || len(line) == 0 {
			return "", err
		}
	}
	lr.lineNo++
	return strings.TrimRight(line, "\r\n"), nil
}

func (lr *lineReader) formatErrorf(format string, a ...any) error {
	return util.WrapErrorf(nil, util.ErrInvalidFormat, "line %d: "+format, append([]any{lr.lineNo}, a...)...)
}

// parseIntList splits line on sep and parses every non-empty token.
func parseIntList(line, sep string) ([]int, error) {
	values := make([]int, 0)
	for _, token := range strings.Split(line, sep) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		value, err := strconv.Atoi(token)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
