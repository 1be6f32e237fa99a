package verify

import (
	"context"
	"fmt"
	"io"
)

// SplitterConfig bounds the work a Splitter does on untrusted input.
type SplitterConfig struct {
	BufferSize      int
	MaxRead         int
	MaxDepth        int
	MaxStringLength int
}

// DefaultSplitterConfig suits record streams produced by the writer.
func DefaultSplitterConfig() SplitterConfig {
	return SplitterConfig{
		BufferSize:      16384,
		MaxRead:         4096,
		MaxDepth:        64,
		MaxStringLength: 1 << 20,
	}
}

// Splitter cuts a stream of JSON records (objects or arrays, optionally
// separated by whitespace, as in JSON Lines) into individual records. It only
// tracks brackets and strings; the records themselves are handed to real
// parsers afterwards.
type Splitter struct {
	reader io.Reader
	cfg    SplitterConfig

	buffer []byte
	cursor int // start of the next record in buffer
	length int // bytes used in buffer
	offset int // stream position of buffer[0]
}

// NewSplitter returns a Splitter reading from reader.
func NewSplitter(reader io.Reader, cfg SplitterConfig) *Splitter {
	def := DefaultSplitterConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.MaxRead <= 0 {
		cfg.MaxRead = def.MaxRead
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.MaxStringLength <= 0 {
		cfg.MaxStringLength = def.MaxStringLength
	}

	return &Splitter{
		reader: reader,
		cfg:    cfg,
		buffer: make([]byte, cfg.BufferSize),
	}
}

// Read pulls up to MaxRead more bytes into the buffer, growing it if needed.
func (s *Splitter) Read() (int, error) {
	if len(s.buffer)-s.length < s.cfg.MaxRead {
		newSize := len(s.buffer) * 2
		if newSize < s.length+s.cfg.MaxRead {
			newSize = s.length + s.cfg.MaxRead
		}
		buffer := make([]byte, newSize)
		copy(buffer, s.buffer[:s.length])
		s.buffer = buffer
	}

	n, err := s.reader.Read(s.buffer[s.length : s.length+s.cfg.MaxRead])
	s.length += n
	return n, err
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// Next locates the next record in the buffered data. It returns end == -1
// when the record is not complete yet.
func (s *Splitter) Next() (start, end int, err error) {
	for start = s.cursor; start < s.length; start++ {
		c := s.buffer[start]
		if c == '{' || c == '[' {
			break
		}
		if c == '}' || c == ']' {
			return 0, 0, fmt.Errorf("invalid JSON: unmatched closing bracket at position %d", s.offset+start)
		}
		if !isSpace(c) {
			return 0, 0, fmt.Errorf("invalid JSON: unexpected character '%c' at position %d", c, s.offset+start)
		}
	}

	var open []byte
	inString := false
	escaped := false
	stringLength := 0

	for i := start; i < s.length; i++ {
		c := s.buffer[i]

		if inString {
			stringLength++
			if stringLength > s.cfg.MaxStringLength {
				return 0, 0, fmt.Errorf("string exceeds maximum length of %d", s.cfg.MaxStringLength)
			}
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
				stringLength = 0
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			if len(open) == s.cfg.MaxDepth {
				return 0, 0, fmt.Errorf("record exceeds maximum depth of %d", s.cfg.MaxDepth)
			}
			open = append(open, c)
		case '}', ']':
			want := byte('{')
			if c == ']' {
				want = '['
			}
			if len(open) == 0 || open[len(open)-1] != want {
				return 0, 0, fmt.Errorf("invalid JSON: unmatched closing bracket at position %d", s.offset+i)
			}
			open = open[:len(open)-1]
			if len(open) == 0 {
				return start, i, nil
			}
		}
	}

	return start, -1, nil
}

// SplitAll reads the whole stream and calls cb for every record. The slice
// passed to cb is only valid during the call. Errors, including a truncated
// final record, go to errCb and stop the split.
func (s *Splitter) SplitAll(ctx context.Context, cb func([]byte), errCb func(error)) {
	for {
		select {
		case <-ctx.Done():
			errCb(ctx.Err())
			return
		default:
		}

		n, err := s.Read()
		if n > 0 {
			if failed := s.processBuffer(cb, errCb); failed {
				return
			}
		}

		if err == io.EOF {
			if s.cursor < s.length {
				errCb(fmt.Errorf("invalid JSON: incomplete record at position %d", s.offset+s.cursor))
			}
			return
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			errCb(err)
			return
		}
	}
}

// processBuffer emits every complete record and compacts the buffer.
func (s *Splitter) processBuffer(cb func([]byte), errCb func(error)) (failed bool) {
	defer s.compact()

	for s.cursor < s.length {
		start, end, err := s.Next()
		if err != nil {
			errCb(err)
			return true
		}
		if end == -1 {
			// Drop leading whitespace so only a real partial record is kept.
			s.cursor = start
			return false
		}

		cb(s.buffer[start : end+1])
		s.cursor = end + 1
	}
	return false
}

func (s *Splitter) compact() {
	if s.cursor == 0 {
		return
	}
	copy(s.buffer, s.buffer[s.cursor:s.length])
	s.length -= s.cursor
	s.offset += s.cursor
	s.cursor = 0
}

// Buffered returns the bytes read but not yet emitted, for debugging.
func (s *Splitter) Buffered() []byte {
	return s.buffer[s.cursor:s.length]
}
