package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/masahif/admitcrawl/internal/cmd"
	"github.com/masahif/admitcrawl/internal/crawler"
)

// Version information set by build flags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Set version information
	cmd.SetVersionInfo(Version, BuildTime)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		// Robots disallow is a permission failure, not a crawl failure
		if errors.Is(err, crawler.ErrRobotsDisallowed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
