//go:build windows

package main

import (
	"fmt"
	"os"
	"syscall"

	winjob "github.com/kolesnikovae/go-winjob"
	"golang.org/x/sys/windows"
)

// jobObjectName is unique per launcher instance so two running copies of
// the application never share a job.
func jobObjectName(launcherPid int, name string) string {
	return fmt.Sprintf("desktop-launcher-%d-%s", launcherPid, name)
}

// platformStartProcess starts the process in its own process group (so it
// can receive CTRL_BREAK) inside a job object that kills the whole tree
// when closed.
func platformStartProcess(p *BackendProcess) error {
	if p.cmd.SysProcAttr == nil {
		p.cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	p.cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP

	job, err := winjob.Create(jobObjectName(os.Getpid(), p.Name),
		winjob.WithKillOnJobClose(),
		winjob.WithBreakawayOK(),
	)
	if err != nil {
		return fmt.Errorf("create job object: %w", err)
	}

	if err := winjob.StartInJobObject(p.cmd, job); err != nil {
		_ = job.Close()
		return fmt.Errorf("start in job: %w", err)
	}

	p.winJob = job
	return nil
}

// hideConsoleWindow keeps a console-subsystem sidecar from flashing a window
func hideConsoleWindow(p *BackendProcess) {
	p.cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}

// platformTerminate sends CTRL_BREAK to the backend's process group. This
// only works when the backend shares our console; a windowless sidecar has
// none, so it is closed with the job right away and gets no grace period.
func platformTerminate(p *BackendProcess) error {
	if err := windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(p.pid)); err != nil {
		p.log.Debugf("CTRL_BREAK to backend %s (PID: %d) failed: %v", p.Name, p.pid, err)
		return platformKill(p)
	}
	return nil
}

func platformKill(p *BackendProcess) error {
	p.mu.Lock()
	job, ok := p.winJob.(*winjob.JobObject)
	p.winJob = nil
	p.mu.Unlock()

	if ok && job != nil {
		return job.Close()
	}
	return p.cmd.Process.Kill()
}

func platformCleanup(p *BackendProcess) {
	if job, ok := p.winJob.(*winjob.JobObject); ok && job != nil {
		_ = job.Close()
		p.winJob = nil
	}
}
