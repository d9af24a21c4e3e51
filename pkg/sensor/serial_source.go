package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/rs/zerolog"
	"github.com/tarm/serial"
)

// SerialSource reads live sensor records from a serial device.
type SerialSource struct {
	port     string
	baudRate int
	window   int
	parser   *LineParser
	logger   zerolog.Logger
}

// NewSerialSource creates a source that returns up to window records per Read.
func NewSerialSource(port string, baudRate, window int, logger zerolog.Logger) *SerialSource {
	return &SerialSource{
		port:     port,
		baudRate: baudRate,
		window:   window,
		parser:   NewLineParser(logger),
		logger:   logger,
	}
}

// Read opens the port and collects one window of records.
func (s *SerialSource) Read(ctx context.Context) ([]models.Record, error) {
	port, err := serial.OpenPort(&serial.Config{Name: s.port, Baud: s.baudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}
	defer port.Close()

	return s.ReadFrom(ctx, port)
}

// ReadFrom collects records from r until the window is full, r ends or ctx is done.
// Closing r is left to the caller, but ctx cancellation will close it when r is an io.Closer.
func (s *SerialSource) ReadFrom(ctx context.Context, r io.Reader) ([]models.Record, error) {
	if closer, ok := r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { closer.Close() })
		defer stop()
	}

	records := make([]models.Record, 0, s.window)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		if record, ok := s.parser.ParseLine(scanner.Text()); ok {
			records = append(records, record)
			if s.window > 0 && len(records) >= s.window {
				break
			}
		}
	}

	if ctx.Err() != nil {
		s.logger.Debug().Int("records", len(records)).Msg("Serial read interrupted")
		return records, nil
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to read serial data: %w", err)
	}

	return records, nil
}
