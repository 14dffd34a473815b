package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// BackendProcess is the handle to a spawned backend. Nothing restarts it:
// a single goroutine waits for the exit and records it.
type BackendProcess struct {
	Name string

	cmd       *exec.Cmd
	stdin     io.WriteCloser
	pid       int
	startTime time.Time

	exitCode int
	exitErr  error
	done     chan struct{}

	logFiles []*os.File
	winJob   interface{}

	log logrus.FieldLogger
	mu  sync.Mutex
}

func newBackendProcess(name string, cmd *exec.Cmd, log logrus.FieldLogger) *BackendProcess {
	return &BackendProcess{
		Name: name,
		cmd:  cmd,
		done: make(chan struct{}),
		log:  log,
	}
}

// pipeStdin connects the child's stdin to a pipe held by the handle
func (p *BackendProcess) pipeStdin() error {
	stdin, err := p.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	p.stdin = stdin
	return nil
}

// appendOutputTo sends the child's stdout and stderr to <dir>/<name>-stdout.log
// and <dir>/<name>-stderr.log
func (p *BackendProcess) appendOutputTo(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	stdoutPath := filepath.Join(dir, fmt.Sprintf("%s-stdout.log", p.Name))
	stderrPath := filepath.Join(dir, fmt.Sprintf("%s-stderr.log", p.Name))

	stdout, err := os.OpenFile(stdoutPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open stdout log file: %w", err)
	}

	stderr, err := os.OpenFile(stderrPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		stdout.Close()
		return fmt.Errorf("failed to open stderr log file: %w", err)
	}

	p.cmd.Stdout = stdout
	p.cmd.Stderr = stderr
	p.logFiles = []*os.File{stdout, stderr}
	return nil
}

// start launches the process and begins waiting on it in the background
func (p *BackendProcess) start() error {
	if err := platformStartProcess(p); err != nil {
		p.closeLogFiles()
		if p.stdin != nil {
			p.stdin.Close()
		}
		return err
	}

	p.pid = p.cmd.Process.Pid
	p.startTime = time.Now()

	go p.wait()
	return nil
}

func (p *BackendProcess) wait() {
	err := p.cmd.Wait()
	duration := time.Since(p.startTime)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	p.mu.Lock()
	p.exitCode = exitCode
	p.exitErr = err
	p.closeLogFiles()
	platformCleanup(p)
	p.mu.Unlock()

	p.log.WithFields(logrus.Fields{
		"pid":      p.pid,
		"exitCode": exitCode,
		"duration": duration.Round(time.Millisecond),
	}).Infof("Backend %s exited", p.Name)

	close(p.done)
}

// Pid returns the operating system process id
func (p *BackendProcess) Pid() int {
	return p.pid
}

// Stdin returns the write end of the child's stdin pipe, or nil if stdin is not piped
func (p *BackendProcess) Stdin() io.Writer {
	if p.stdin == nil {
		return nil
	}
	return p.stdin
}

// Done is closed once the process has exited and been reaped
func (p *BackendProcess) Done() <-chan struct{} {
	return p.done
}

// ExitCode returns the exit code and wait error. Only meaningful after Done is closed.
func (p *BackendProcess) ExitCode() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode, p.exitErr
}

// Stop asks the process tree to terminate and kills it if it is still
// alive after timeout.
func (p *BackendProcess) Stop(timeout time.Duration) error {
	select {
	case <-p.done:
		return nil
	default:
	}

	p.log.Infof("Stopping backend %s (PID: %d)", p.Name, p.pid)

	// EOF on stdin is the first hint for backends that read it
	if p.stdin != nil {
		p.stdin.Close()
	}

	if err := platformTerminate(p); err != nil {
		p.log.Debugf("Terminate backend %s: %v", p.Name, err)
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(timeout):
	}

	p.log.Warnf("Backend %s (PID: %d) did not stop after %v, killing it", p.Name, p.pid, timeout)
	if err := platformKill(p); err != nil {
		return fmt.Errorf("failed to kill backend %s: %w", p.Name, err)
	}
	<-p.done
	return nil
}

func (p *BackendProcess) closeLogFiles() {
	for _, f := range p.logFiles {
		f.Close()
	}
	p.logFiles = nil
}
