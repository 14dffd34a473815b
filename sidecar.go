package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrSidecarNotFound is returned when no bundled binary matches the sidecar name
var ErrSidecarNotFound = errors.New("sidecar binary not found")

// targetTriples maps GOOS/GOARCH to the platform suffix packagers append to
// bundled sidecar binaries.
var targetTriples = map[string]string{
	"darwin/amd64":  "x86_64-apple-darwin",
	"darwin/arm64":  "aarch64-apple-darwin",
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"linux/386":     "i686-unknown-linux-gnu",
	"linux/arm":     "armv7-unknown-linux-gnueabihf",
	"windows/amd64": "x86_64-pc-windows-msvc",
	"windows/arm64": "aarch64-pc-windows-msvc",
	"windows/386":   "i686-pc-windows-msvc",
}

// targetTriple returns the platform suffix for goos/goarch, or "" if unknown
func targetTriple(goos, goarch string) string {
	return targetTriples[goos+"/"+goarch]
}

// ResolveSidecar locates the bundled binary for name next to the running executable
func ResolveSidecar(name string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return resolveSidecarIn(filepath.Dir(exe), name, runtime.GOOS, runtime.GOARCH)
}

// resolveSidecarIn looks in dir for name-<triple> first, then plain name.
func resolveSidecarIn(dir, name, goos, goarch string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty sidecar name")
	}

	ext := ""
	if goos == "windows" {
		ext = ".exe"
	}

	candidates := make([]string, 0, 2)
	if triple := targetTriple(goos, goarch); triple != "" {
		candidates = append(candidates, name+"-"+triple+ext)
	}
	candidates = append(candidates, name+ext)

	var notExecutable error
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if goos != "windows" && info.Mode().Perm()&0111 == 0 {
			if notExecutable == nil {
				notExecutable = fmt.Errorf("sidecar %s is not executable", path)
			}
			continue
		}
		return path, nil
	}

	if notExecutable != nil {
		return "", notExecutable
	}
	return "", fmt.Errorf("%w: %q in %s", ErrSidecarNotFound, name, dir)
}
