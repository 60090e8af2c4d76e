package audio

import (
	"io"
	"sync"
	"time"
)

// Bell rings the terminal bell for every tone. It is the tone emitter of
// the headless console mode.
type Bell struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewBell writes BEL characters to writer.
func NewBell(writer io.Writer) *Bell {
	return &Bell{writer: writer}
}

// Emit rings once regardless of the tone parameters.
func (bell *Bell) Emit(float64, time.Duration, float64) error {
	bell.mu.Lock()
	defer bell.mu.Unlock()
	_, err := io.WriteString(bell.writer, "\a")
	return err
}
