// Package verify checks text produced by this module with independent JSON
// parsers. It is used by tests and by the benchmark CLI's -verify mode; the
// encoding packages never depend on it.
package verify

import (
	"bytes"
	"context"
	"io"

	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	segjson "github.com/segmentio/encoding/json"
)

// ErrInvalid is wrapped by every rejection this package reports.
var ErrInvalid = errors.New("verify: invalid JSON")

// Parser is a JSON implementation that can judge a document.
type Parser interface {
	Name() string
	Valid(doc []byte) bool
}

type goccyParser struct{}

func (goccyParser) Name() string          { return "goccy/go-json" }
func (goccyParser) Valid(doc []byte) bool { return gojson.Valid(doc) }

type jsoniterParser struct{}

func (jsoniterParser) Name() string          { return "json-iterator" }
// Valid skips one value and then requires the input to be exhausted.
// jsoniter.Valid alone reports io.EOF for a top-level number that ends the
// input, so the document is followed by a space before skipping.
func (jsoniterParser) Valid(doc []byte) bool {
	padded := append(doc[:len(doc):len(doc)], ' ')
	iter := jsoniter.ConfigDefault.BorrowIterator(padded)
	defer jsoniter.ConfigDefault.ReturnIterator(iter)

	iter.Skip()
	if iter.Error != nil {
		return false
	}
	return iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF
}

type segmentioParser struct{}

func (segmentioParser) Name() string          { return "segmentio/encoding" }
func (segmentioParser) Valid(doc []byte) bool { return segjson.Valid(doc) }

// Parsers returns every parser Check consults.
func Parsers() []Parser {
	return []Parser{goccyParser{}, jsoniterParser{}, segmentioParser{}}
}

// Check reports an error unless every parser accepts doc.
func Check(doc []byte) error {
	for _, p := range Parsers() {
		if !p.Valid(doc) {
			return errors.Wrapf(ErrInvalid, "%s rejected %q", p.Name(), preview(doc))
		}
	}
	return nil
}

func preview(doc []byte) []byte {
	const max = 64
	if len(doc) > max {
		return doc[:max]
	}
	return doc
}

// CheckStream splits r into records and checks each one. It returns the
// number of records that passed before the first failure.
func CheckStream(ctx context.Context, r io.Reader, cfg SplitterConfig) (int, error) {
	var (
		count    int
		firstErr error
	)
	splitter := NewSplitter(r, cfg)
	splitter.SplitAll(ctx, func(record []byte) {
		if firstErr != nil {
			return
		}
		if err := Check(record); err != nil {
			firstErr = errors.Wrapf(err, "record %d", count)
			return
		}
		count++
	}, func(err error) {
		if firstErr == nil {
			firstErr = errors.Wrapf(ErrInvalid, "record %d: %v", count, err)
		}
	})
	return count, firstErr
}

// CheckBytes is CheckStream over an in-memory stream.
func CheckBytes(stream []byte) (int, error) {
	return CheckStream(context.Background(), bytes.NewReader(stream), DefaultSplitterConfig())
}
