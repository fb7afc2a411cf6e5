// Package transporters contains log output destinations.
package transporters

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"quacker/pkg/log"
)

// Stdout writes line-delimited JSON entries to an io.Writer, os.Stdout by default.
type Stdout struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdout writes to os.Stdout.
func NewStdout() *Stdout {
	return NewStdoutWithWriter(os.Stdout)
}

// NewStdoutWithWriter writes to w. Tests pass a bytes.Buffer.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{w: w}
}

func (s *Stdout) Name() string { return "stdout" }

// Write encodes the entry followed by a newline.
func (s *Stdout) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(append(data, '\n'))
	return err
}

func (s *Stdout) Close() error { return nil }
