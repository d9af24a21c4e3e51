package sensor_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/benmeehan/accident-agent/pkg/sensor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialSource_ReadFrom_Window(t *testing.T) {
	src := sensor.NewSerialSource("/dev/null", 9600, 2, zerolog.Nop())
	input := strings.Join([]string{
		ggaSentence,
		`{"time":"t0","acceleration":1,"impact":2}`,
		"noise",
		`{"time":"t1","acceleration":3,"impact":4}`,
		`{"time":"t2","acceleration":5,"impact":6}`,
	}, "\n")

	records, err := src.ReadFrom(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "t0", records[0]["time"])
	assert.Equal(t, "t1", records[1]["time"])
	assert.Contains(t, records[0], "gps")
}

func TestSerialSource_ReadFrom_EOF(t *testing.T) {
	src := sensor.NewSerialSource("/dev/null", 9600, 10, zerolog.Nop())

	records, err := src.ReadFrom(context.Background(), strings.NewReader(`{"time":"t0","acceleration":1,"impact":2}`))

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSerialSource_ReadFrom_CancelUnblocks(t *testing.T) {
	src := sensor.NewSerialSource("/dev/null", 9600, 10, zerolog.Nop())
	pr, pw := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		pw.Write([]byte(`{"time":"t0","acceleration":1,"impact":2}` + "\n"))
		cancel()
	}()

	records, err := src.ReadFrom(ctx, pr)

	assert.NoError(t, err)
	assert.LessOrEqual(t, len(records), 1)
}
