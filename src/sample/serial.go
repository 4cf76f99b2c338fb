package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

const DefaultBaud = 115200

// Serial reads samples streamed by a board over a serial port, in the text
// format understood by Reader.
type Serial struct {
	port *serial.Port
	*Reader
}

// OpenSerial opens the port. A board that stays silent longer than
// readTimeout ends the stream with io.EOF; zero blocks until data arrives.
func OpenSerial(name string, baud int, readTimeout time.Duration) (*Serial, error) {
	if baud == 0 {
		baud = DefaultBaud
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("sample: open %s: %w", name, err)
	}
	return &Serial{port: p, Reader: NewReader(p)}, nil
}

func (s *Serial) Next(ctx context.Context) (Sample, error) {
	return s.Reader.Next(ctx)
}

func (s *Serial) Close() error {
	return s.port.Close()
}
