// happyavatar - Make sad circular avatars happy
//
// happyavatar inspects the colour palette of a circular avatar and replaces
// grey, sad colours with vivid ones.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/happyavatar/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
