// Swatch - A colour palette extractor
//
// Swatch samples an image, clusters its colours into a small palette and
// writes the image back out with the palette rendered underneath it.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
