// Package reader supplies raw report lines to the column parsers.
package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single report line.
const maxLineSize = 1024 * 1024

// Line is one line of a report file.
type Line struct {
	// Text is the line content without the trailing newline.
	Text string

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// Source provides an iterator over report lines.
// Implementations are not safe for concurrent use.
type Source interface {
	// Next returns the next line, or io.EOF when no more lines are available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}

// Options controls which lines a FileSource yields.
type Options struct {
	// SkipBlank drops lines that are empty or whitespace only.
	SkipBlank bool

	// CommentPrefix drops lines whose trimmed text starts with it.
	CommentPrefix string
}

func (o Options) keep(text string) bool {
	trimmed := strings.TrimSpace(text)
	if o.SkipBlank && trimmed == "" {
		return false
	}
	if o.CommentPrefix != "" && strings.HasPrefix(trimmed, o.CommentPrefix) {
		return false
	}
	return true
}

// FileSource reads lines from a list of files in order.
type FileSource struct {
	files []string
	opts  Options

	file      *os.File
	scanner   *bufio.Scanner
	source    string
	lineNum   int
	fileIndex int
}

// NewFileSource creates a Source over files.
func NewFileSource(files []string, opts Options) *FileSource {
	return &FileSource{
		files:     files,
		opts:      opts,
		fileIndex: -1,
	}
}

// Next returns the next line that passes the source options.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.scanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.scanner.Scan() {
			s.lineNum++
			text := strings.TrimSuffix(s.scanner.Text(), "\r")
			if !s.opts.keep(text) {
				continue
			}
			return &Line{
				Text:    text,
				Source:  s.source,
				LineNum: s.lineNum,
			}, nil
		}

		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.source, err)
		}
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases the open file, if any.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- report paths come from the user
	if err != nil {
		return fmt.Errorf("opening report %s: %w", path, err)
	}

	s.file = f
	s.scanner = bufio.NewScanner(f)
	s.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s.source = path
	s.lineNum = 0
	return nil
}

func (s *FileSource) closeCurrentFile() error {
	s.scanner = nil
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// ReadAll drains src and returns every line.
func ReadAll(ctx context.Context, src Source) ([]Line, error) {
	var lines []Line
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, *line)
	}
}

// ReadFile reads the lines of a single file.
func ReadFile(ctx context.Context, path string, opts Options) ([]Line, error) {
	src := NewFileSource([]string{path}, opts)
	defer src.Close()
	return ReadAll(ctx, src)
}

// Texts returns the text of each line.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
