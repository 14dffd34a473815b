package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

// A stand-in backend for integration tests. It takes no arguments, like a
// bundled sidecar: it records its PID in $FAKEBACKEND_MARKER (if set) and
// runs until it is signalled.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("fakebackend-start", os.Getpid())

	if marker := os.Getenv("FAKEBACKEND_MARKER"); marker != "" {
		if err := os.WriteFile(marker, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "write marker: %v\n", err)
			os.Exit(2)
		}
	}

	<-ctx.Done()
	fmt.Println("fakebackend-stop")
}
