//go:build !production

package main

// buildMode is Development unless the binary is built with -tags production.
const buildMode = Development
