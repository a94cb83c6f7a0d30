// Package reporter serializes console output from concurrent workers.
//
// Workers send formatted lines to a single consumer goroutine, so lines
// never interleave and no caller ever blocks on a shared stdout lock
// while holding other resources.
package reporter

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

func okMark() string   { return green.Sprint("✓") }
func failMark() string { return red.Sprint("✗") }
func waitMark() string { return yellow.Sprint("⏸") }
func slowMark() string { return yellow.Sprint("⏱") }

// Reporter is a channel-fed console sink. All methods are safe for
// concurrent use; output order is send order.
type Reporter struct {
	lines chan string
	done  chan struct{}
	w     io.Writer
}

// New starts a reporter writing to w. Call Close to flush and stop it.
func New(w io.Writer) *Reporter {
	r := &Reporter{
		lines: make(chan string, 64),
		done:  make(chan struct{}),
		w:     w,
	}
	go r.loop()
	return r
}

func (r *Reporter) loop() {
	defer close(r.done)
	for line := range r.lines {
		fmt.Fprintln(r.w, line)
	}
}

// Close drains pending lines and stops the consumer.
func (r *Reporter) Close() {
	close(r.lines)
	<-r.done
}

// Printf queues an arbitrary formatted line.
func (r *Reporter) Printf(format string, args ...any) {
	r.lines <- fmt.Sprintf(format, args...)
}

// Success reports a completed download.
func (r *Reporter) Success(name string) {
	r.lines <- fmt.Sprintf("  %s %s", okMark(), name)
}

// Failed reports a task that exhausted its attempts.
func (r *Reporter) Failed(name string, attempts int) {
	r.lines <- fmt.Sprintf("  %s Failed after %d attempts: %s", failMark(), attempts, name)
}

// FetchError reports a terminal invocation fault.
func (r *Reporter) FetchError(name string, err error) {
	r.lines <- fmt.Sprintf("  %s Error: %s - %v", failMark(), name, err)
}

// RateLimited reports a backoff wait forced by Drive throttling.
func (r *Reporter) RateLimited(wait time.Duration) {
	r.lines <- fmt.Sprintf("  %s Rate limit hit, waiting %.1fs...", waitMark(), wait.Seconds())
}

// TimeoutRetry reports an invocation timeout with attempts remaining.
func (r *Reporter) TimeoutRetry(name string) {
	r.lines <- fmt.Sprintf("  %s Timeout, retrying... %s", slowMark(), name)
}

// Timeout reports an invocation timeout on the final attempt.
func (r *Reporter) Timeout(name string) {
	r.lines <- fmt.Sprintf("  %s Timeout: %s", failMark(), name)
}
