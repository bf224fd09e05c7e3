// Package main is the entry point for the git-sparse CLI.
package main

import (
	"os"

	"github.com/scmkit/go-sparse/cmd/git-sparse/app"
	"github.com/scmkit/go-sparse/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
