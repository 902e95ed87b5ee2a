package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Binary is the ffmpeg executable looked up on PATH.
var Binary = "ffmpeg"

// Process represents a running ffmpeg process with lifecycle management.
type Process struct {
	cmd    *exec.Cmd
	args   []string
	pid    int
	stdout *io.PipeReader
	done   chan struct{}
	err    error

	mu     sync.Mutex
	stderr bytes.Buffer
}

// lockedWriter lets stderr be read while the process is still writing it.
type lockedWriter struct{ p *Process }

func (w lockedWriter) Write(b []byte) (int, error) {
	w.p.mu.Lock()
	defer w.p.mu.Unlock()
	return w.p.stderr.Write(b)
}

// PID returns the process ID, or 0 if not started.
func (p *Process) PID() int {
	return p.pid
}

// Stdout is the process's standard output. It must be drained, or closed
// with Close, or the process stalls once the pipe fills.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Close kills the process and unblocks any pending Stdout read.
func (p *Process) Close() error {
	err := p.Kill()
	_ = p.stdout.Close()
	return err
}

// Wait blocks until the process completes and returns any error.
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// Kill sends SIGKILL to the process.
func (p *Process) Kill() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Stderr returns the stderr output captured so far.
func (p *Process) Stderr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stderr.String()
}

// Start starts an ffmpeg process with stdout piped to the caller.
// The caller is responsible for calling Close() or draining Stdout, then
// Wait(), to clean up. Once the process exits, Stdout reports its exit error
// (or io.EOF on success) after the last byte.
func Start(ctx context.Context, args []string) (*Process, error) {
	cmd := exec.CommandContext(ctx, Binary, args...)

	pr, pw := io.Pipe()
	p := &Process{
		cmd:    cmd,
		args:   args,
		stdout: pr,
		done:   make(chan struct{}),
	}
	cmd.Stdout = pw
	cmd.Stderr = lockedWriter{p}

	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		return nil, fmt.Errorf("ffmpeg: failed to start: %w", err)
	}
	p.pid = cmd.Process.Pid

	go func() {
		defer close(p.done)
		p.err = cmd.Wait()
		if p.err != nil {
			p.err = &Error{
				Args:   args,
				Stderr: p.Stderr(),
				Err:    p.err,
			}
		}
		_ = pw.CloseWithError(p.err)
	}()

	return p, nil
}

// Error represents an ffmpeg execution error with context.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

// Error implements error.
func (e *Error) Error() string {
	// Extract just the last few lines of stderr for the error message
	lines := strings.Split(strings.TrimSpace(e.Stderr), "\n")
	var lastLines string
	if len(lines) > 3 {
		lastLines = strings.Join(lines[len(lines)-3:], "\n")
	} else {
		lastLines = strings.Join(lines, "\n")
	}

	if lastLines != "" {
		return fmt.Sprintf("ffmpeg: %v: %s", e.Err, lastLines)
	}
	return fmt.Sprintf("ffmpeg: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FullStderr returns the complete stderr output.
func (e *Error) FullStderr() string {
	return e.Stderr
}

// Command returns the command that was executed.
func (e *Error) Command() string {
	return "ffmpeg " + strings.Join(e.Args, " ")
}
