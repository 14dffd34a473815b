package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DevLauncher runs the backend script through an interpreter. Every failure
// is reported on Out and swallowed so the shell stays usable.
type DevLauncher struct {
	Interpreter string
	ScriptPath  string
	Env         map[string]string

	// Out receives the diagnostic lines; Stdout and Stderr are inherited by the child.
	Out    io.Writer
	Stdout io.Writer
	Stderr io.Writer

	getwd func() (string, error)
	log   logrus.FieldLogger
}

// NewDevLauncher creates a development launcher from cfg
func NewDevLauncher(cfg LauncherConfig, out io.Writer, log logrus.FieldLogger) *DevLauncher {
	return &DevLauncher{
		Interpreter: cfg.Interpreter,
		ScriptPath:  cfg.Script,
		Env:         cfg.Env,
		Out:         out,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		getwd:       os.Getwd,
		log:         log,
	}
}

// Launch implements BackendLauncher. It always returns nil.
func (l *DevLauncher) Launch(app *AppContext) error {
	parts, parseErr := shlex.Split(l.Interpreter)
	program := l.Interpreter
	if parseErr == nil && len(parts) > 0 {
		program = parts[0]
	}
	label := interpreterLabel(program)

	fmt.Fprintf(l.Out, "🚀 Starting backend server with %s...\n", label)

	if cwd, err := l.getwd(); err == nil {
		fmt.Fprintf(l.Out, "📂 Current working directory: %q\n", cwd)
	}

	// Advisory only, the interpreter is started either way
	if _, err := os.Stat(l.ScriptPath); err == nil {
		fmt.Fprintf(l.Out, "✅ Script found at %s\n", l.ScriptPath)
	} else {
		fmt.Fprintf(l.Out, "⚠️ Script NOT found at %s. Trying absolute path resolution...\n", l.ScriptPath)
	}

	p, err := l.spawn(parts, parseErr)
	if err != nil {
		fmt.Fprintf(l.Out, "❌ Failed to spawn backend %s process: %v\n", label, err)
		return nil
	}

	fmt.Fprintf(l.Out, "✅ Backend %s process spawned successfully\n", label)

	if err := app.ManageBackend(p); err != nil {
		l.log.Warnf("Discarding second backend process (PID: %d): %v", p.Pid(), err)
		p.Stop(0)
	}
	return nil
}

func (l *DevLauncher) spawn(parts []string, parseErr error) (*BackendProcess, error) {
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse interpreter: %w", parseErr)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty interpreter")
	}

	args := append(append([]string{}, parts[1:]...), l.ScriptPath)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Env = l.buildEnv()

	p := newBackendProcess(interpreterLabel(parts[0]), cmd, l.log)
	if err := p.pipeStdin(); err != nil {
		return nil, err
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

// buildEnv layers the OS environment, the .env file next to the script and
// the configured overrides, later layers winning.
func (l *DevLauncher) buildEnv() []string {
	envMap := make(map[string]string)

	for _, env := range os.Environ() {
		if idx := strings.Index(env, "="); idx > 0 {
			envMap[env[:idx]] = env[idx+1:]
		}
	}

	dotenvPath := filepath.Join(filepath.Dir(l.ScriptPath), ".env")
	if _, err := os.Stat(dotenvPath); err == nil {
		dotenvVars, err := godotenv.Read(dotenvPath)
		if err != nil {
			l.log.Warnf("Ignoring .env file at %s: %v", dotenvPath, err)
		} else {
			for k, v := range dotenvVars {
				envMap[k] = v
			}
			l.log.Infof("Loaded %d environment variables from %s", len(dotenvVars), dotenvPath)
		}
	}

	for k, v := range l.Env {
		envMap[k] = v
	}

	env := make([]string, 0, len(envMap))
	for k, v := range envMap {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

// interpreterLabel turns "/usr/bin/node.exe" into "node"
func interpreterLabel(program string) string {
	return strings.TrimSuffix(filepath.Base(program), ".exe")
}
