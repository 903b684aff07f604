package main

import (
	"fmt"
	"os"
)

func fatal(msg string, err error) {
	if log != nil {
		_ = log.Sync()
	}
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}
