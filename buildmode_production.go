//go:build production

package main

const buildMode = Production
