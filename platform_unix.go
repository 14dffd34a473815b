//go:build !windows

package main

import (
	"syscall"
)

// platformStartProcess starts the process in a new process group so the
// whole backend tree can be signalled at once.
func platformStartProcess(p *BackendProcess) error {
	p.cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	return p.cmd.Start()
}

// hideConsoleWindow is a no-op on Unix-like systems
func hideConsoleWindow(p *BackendProcess) {}

func platformTerminate(p *BackendProcess) error {
	return syscall.Kill(-p.pid, syscall.SIGTERM)
}

func platformKill(p *BackendProcess) error {
	return syscall.Kill(-p.pid, syscall.SIGKILL)
}

func platformCleanup(p *BackendProcess) {}
