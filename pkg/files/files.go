// Package files implements the file-stream collaborator: paged input and
// output, backup handling, the EI library search path, and the memory
// file that remembers the last edited filename.
package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const formFeed = 0x0C

// inputStream is one paged input file.
type inputStream struct {
	f   *os.File
	r   *bufio.Reader
	eof bool
}

// outputStream is one output file, written to a temporary name and
// renamed on close.
type outputStream struct {
	f      *os.File
	name   string
	temp   string
	backup bool
}

// Streams is the two-stream file collaborator. It satisfies the
// interpreter's FileSystem interface.
type Streams struct {
	in     [2]*inputStream
	out    [2]*outputStream
	curIn  int
	curOut int
	library []string // EI search path, from TECO_LIBRARY
}

// New returns an empty stream set. The library path for ReadFile comes
// from the TECO_LIBRARY environment variable.
func New() *Streams {
	s := &Streams{}
	if lib := os.Getenv("TECO_LIBRARY"); lib != "" {
		s.library = filepath.SplitList(lib)
	}
	return s
}

// OpenInput opens name on the current input stream, closing whatever
// was there.
func (s *Streams) OpenInput(name string) error {
	if cur := s.in[s.curIn]; cur != nil {
		cur.f.Close()
	}
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	s.in[s.curIn] = &inputStream{f: f, r: bufio.NewReader(f)}
	return nil
}

// OpenOutput opens name on the current output stream. Output goes to a
// temporary file until CloseOutput; with backup the old file is kept as
// name~.
func (s *Streams) OpenOutput(name string, backup bool) error {
	if cur := s.out[s.curOut]; cur != nil {
		cur.f.Close()
		os.Remove(cur.temp)
	}
	temp := name + ".tmp"
	f, err := os.Create(temp)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	s.out[s.curOut] = &outputStream{f: f, name: name, temp: temp, backup: backup}
	return nil
}

// ReadPage returns the next page of input: everything up to a form feed
// or end of file.
func (s *Streams) ReadPage() ([]byte, bool, bool, error) {
	cur := s.in[s.curIn]
	if cur == nil || cur.eof {
		return nil, false, true, nil
	}
	page, err := cur.r.ReadBytes(formFeed)
	ffSeen := false
	if err == io.EOF {
		cur.eof = true
	} else if err != nil {
		return nil, false, false, fmt.Errorf("read page: %w", err)
	} else {
		ffSeen = true
		page = page[:len(page)-1]
	}
	if _, peekErr := cur.r.Peek(1); peekErr == io.EOF {
		cur.eof = true
	}
	return page, ffSeen, cur.eof, nil
}

// WritePage appends a page to the output, with a trailing form feed
// when ff is set.
func (s *Streams) WritePage(text []byte, ff bool) error {
	cur := s.out[s.curOut]
	if cur == nil {
		return fmt.Errorf("no output file open")
	}
	if _, err := cur.f.Write(text); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	if ff {
		if _, err := cur.f.Write([]byte{formFeed}); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
	}
	return nil
}

// CloseInput closes the current input stream.
func (s *Streams) CloseInput() {
	if cur := s.in[s.curIn]; cur != nil {
		cur.f.Close()
		s.in[s.curIn] = nil
	}
}

// CloseOutput finishes the current output file, renaming the temporary
// into place and keeping a backup when requested.
func (s *Streams) CloseOutput() error {
	cur := s.out[s.curOut]
	if cur == nil {
		return nil
	}
	s.out[s.curOut] = nil
	if err := cur.f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if cur.backup {
		if _, err := os.Stat(cur.name); err == nil {
			if err := os.Rename(cur.name, cur.name+"~"); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
		}
	}
	if err := os.Rename(cur.temp, cur.name); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// KillOutput discards the current output file.
func (s *Streams) KillOutput() error {
	cur := s.out[s.curOut]
	if cur == nil {
		return nil
	}
	s.out[s.curOut] = nil
	cur.f.Close()
	if err := os.Remove(cur.temp); err != nil {
		return fmt.Errorf("kill output: %w", err)
	}
	return nil
}

// InputOpen reports whether the current input stream has a file.
func (s *Streams) InputOpen() bool { return s.in[s.curIn] != nil }

// OutputOpen reports whether the current output stream has a file.
func (s *Streams) OutputOpen() bool { return s.out[s.curOut] != nil }

// AtEOF reports whether the current input stream is exhausted.
func (s *Streams) AtEOF() bool {
	cur := s.in[s.curIn]
	return cur == nil || cur.eof
}

// SelectInput switches between the primary (0) and secondary (1) input
// streams.
func (s *Streams) SelectInput(stream int) error {
	if stream < 0 || stream >= len(s.in) {
		return fmt.Errorf("no such input stream: %d", stream)
	}
	s.curIn = stream
	return nil
}

// SelectOutput switches between the primary (0) and secondary (1)
// output streams.
func (s *Streams) SelectOutput(stream int) error {
	if stream < 0 || stream >= len(s.out) {
		return fmt.Errorf("no such output stream: %d", stream)
	}
	s.curOut = stream
	return nil
}

// ReadFile slurps a file, trying the working directory and then each
// directory on the library path.
func (s *Streams) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err == nil {
		return data, nil
	}
	if filepath.IsAbs(name) {
		return nil, err
	}
	for _, dir := range s.library {
		if data, derr := os.ReadFile(filepath.Join(dir, name)); derr == nil {
			return data, nil
		}
	}
	return nil, err
}

// WriteFile stores data under name.
func (s *Streams) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}

// Remember records the last edited filename in the memory file, when
// TECO_MEMORY names one.
func Remember(name string) {
	mem := os.Getenv("TECO_MEMORY")
	if mem == "" || name == "" {
		return
	}
	os.WriteFile(mem, []byte(name+"\n"), 0644)
}

// Recall returns the filename recorded in the memory file, if any.
func Recall() string {
	mem := os.Getenv("TECO_MEMORY")
	if mem == "" {
		return ""
	}
	data, err := os.ReadFile(mem)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
