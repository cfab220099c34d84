package transport

import (
	"context"
	"fmt"
	"os"
)

// StdOutPrinter is a write-only sink to the process's standard output,
// useful for a device whose only job is to show what is being multiplexed.
type StdOutPrinter struct{}

func NewStdOutPrinter() *StdOutPrinter {
	return &StdOutPrinter{}
}

func (t *StdOutPrinter) Open(ctx context.Context) error {
	return nil
}

func (t *StdOutPrinter) Close() error {
	return nil
}

func (t *StdOutPrinter) Read(ctx context.Context) ([]byte, []bool, error) {
	<-ctx.Done()
	return nil, nil, ctx.Err()
}

func (t *StdOutPrinter) Write(ctx context.Context, data []byte, _ []bool) (int, error) {
	n, err := os.Stdout.Write(data)
	if err != nil {
		return n, fmt.Errorf("transport: write stdout: %w", err)
	}
	return n, nil
}

func (t *StdOutPrinter) Flush() error {
	return nil
}
