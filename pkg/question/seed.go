// Package question reads the seed question and derives follow-up questions
// from answers.
package question

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoSeed is returned when the seed file has no usable first line.
var ErrNoSeed = errors.New("no initial question")

// ReadSeed returns the first line of the file at path with surrounding
// whitespace removed.
func ReadSeed(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read seed question: %w", err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read seed question: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrNoSeed
	}
	return line, nil
}
