package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/benmeehan/accident-agent/pkg/file"
	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the process logger writing JSON to stdout and, unless
// logFile is empty or "-", appending to logFile.
func NewLogger(level, logFile string, stdout io.Writer, fileClient file.FileOperations) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	writers := []io.Writer{stdout}
	var closer io.Closer = nopCloser{}
	if logFile != "" && logFile != "-" {
		f, err := fileClient.OpenAppend(logFile)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		writers = append(writers, f)
		closer = f
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}
