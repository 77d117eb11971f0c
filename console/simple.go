package console

import (
	"io"
)

// Simple console writes straight to a stream
type Simple struct {
	out io.Writer
}

// NewWriter returns a console printing to w
func NewWriter(w io.Writer) *Simple {
	return &Simple{out: w}
}

// WriteConsole displays a string on the console
func (c *Simple) WriteConsole(msg string) error {
	_, err := io.WriteString(c.out, msg)
	return err
}

