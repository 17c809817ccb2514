// Dominant - extract the dominant colours of images
//
// Dominant clusters image pixels into a small palette of representative
// colours, per image or averaged across a directory.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/dominant/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
