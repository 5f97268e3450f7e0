// Package summarize produces natural-language summaries of enriched
// product batches via streaming LLM backends, abstracted behind
// interfaces for testability.
package summarize

import (
	"context"
	"io"
	"strings"
	"sync"
)

// Request defines the input for a streamed generation call.
type Request struct {
	Prompt      string
	Model       string // backend default when empty
	MaxTokens   int
	Temperature float64
}

// StreamBackend defines the interface for streamed LLM text generation.
type StreamBackend interface {
	// Stream starts a generation request and returns the response as a
	// stream of incremental text fragments.
	Stream(ctx context.Context, req Request) (*Stream, error)
	Name() string
}

// Stream is a pull-based sequence of text fragments from a model
// response. The caller drives iteration: each Next call may block until
// the next fragment arrives from upstream. Concatenating every fragment,
// in order, reconstitutes the full response text.
//
// Close releases the underlying HTTP response, so a caller that stops
// iterating early aborts the upstream request instead of draining it.
// Next returns io.EOF once the response is complete.
type Stream struct {
	recv  func() (string, error)
	close func() error

	closeOnce sync.Once
	closeErr  error
}

// NewStream builds a Stream from a receive function and a release
// function. recv returns one fragment per call and io.EOF at the end.
func NewStream(recv func() (string, error), closeFn func() error) *Stream {
	return &Stream{recv: recv, close: closeFn}
}

// Next returns the next text fragment, blocking until one is available.
// It returns io.EOF when the response is complete.
func (s *Stream) Next() (string, error) {
	return s.recv()
}

// Close releases the underlying response. Safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		if s.close != nil {
			s.closeErr = s.close()
		}
	})
	return s.closeErr
}

// Collect drains the stream and returns the concatenated text. The
// stream is closed afterwards.
func (s *Stream) Collect() (string, error) {
	defer s.Close() //nolint:errcheck // release only

	var sb strings.Builder
	for {
		frag, err := s.Next()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(frag)
	}
}
