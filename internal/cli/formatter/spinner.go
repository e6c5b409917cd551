package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner redraws one status line on w until stopped. After the first
// second the line also shows the elapsed time, so a slow catalog load is
// visibly still working.
type Spinner struct {
	w       io.Writer
	message string
	start   time.Time

	stopOnce sync.Once
	quit     chan struct{}
	exited   chan struct{}
}

// NewSpinner creates a spinner that draws on w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

// Start launches the drawing goroutine.
func (s *Spinner) Start() {
	s.start = time.Now()
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprint(s.w, "\r\033[K"+s.line(frame, time.Since(s.start)))
		}
	}
}

func (s *Spinner) line(frame int, elapsed time.Duration) string {
	glyph := StylePurple.Render(spinnerFrames[frame%len(spinnerFrames)])
	if elapsed < time.Second {
		return fmt.Sprintf("  %s %s", glyph, Dim(s.message))
	}
	return fmt.Sprintf("  %s %s %s", glyph, Dim(s.message), Dim(fmt.Sprintf("(%.0fs)", elapsed.Seconds())))
}

// Stop clears the line and waits for the drawing goroutine. Later calls
// are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		<-s.exited
	})
}

// StartSpinner starts a spinner on w and returns its Stop.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
