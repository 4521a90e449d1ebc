package jumpfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrNameMismatch reports a file whose name does not follow the jump
// file naming convention. Such files are out of scope rather than
// broken, and callers exclude them from the failed list.
var ErrNameMismatch = errors.New("filename does not match jump file pattern")

// ErrUndecodable reports a file none of the fallback encodings could decode.
var ErrUndecodable = errors.New("no encoding could decode file")

// Result holds the parsed content of a single jump file.
type Result struct {
	Path      string
	Session   string
	Lines     []string
	TagCounts map[string]int
}

// Process reads and parses one jump file. The bytes are decoded with
// the first encoding that succeeds (UTF-8, then ISO 8859-1, then
// Windows-1252). Blank lines and #format: metadata lines are dropped;
// every remaining line is kept as content and its tag, if any, counted.
func Process(path string) (*Result, error) {
	session, ok := SessionName(path)
	if !ok {
		return nil, ErrNameMismatch
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Path:      path,
		Session:   session,
		TagCounts: make(map[string]int),
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, FormatPrefix) {
			continue
		}
		res.Lines = append(res.Lines, line)
		if tag, ok := Tag(line); ok {
			res.TagCounts[tag]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return res, nil
}

// decode tries the fallback encoding chain, stopping at the first
// that decodes the bytes cleanly.
func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		out, err := cm.NewDecoder().Bytes(raw)
		if err == nil {
			return string(out), nil
		}
	}
	return "", ErrUndecodable
}
