// Package main is the single-binary entrypoint for forgeledger.
// One binary, one SQLite file, no accounts.
package main

import "github.com/forgeledger/forgeledger/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
