package main

import (
	"fmt"
	"os"

	"funcfold/internal/foldcli"
)

func main() {
	if err := foldcli.NewRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "funcfold:", err)
		os.Exit(1)
	}
}
