package logger

import (
	"io"
	"log"
	"os"
)

// New returns the diagnostics logger. An empty path logs to stderr,
// anything else is opened for appending.
func New(path string) (*log.Logger, io.Closer, error) {
	if len(path) == 0 {
		return log.New(os.Stderr, "sim86 ", log.Ltime), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, nil, err
	}
	l := log.New(f, "sim86 ", log.Ldate|log.Ltime|log.Lshortfile)
	l.Printf("Initializing sim86.log")
	return l, f, nil
}
