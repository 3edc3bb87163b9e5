package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/git-agecrypt/cmd"
	"github.com/PolarWolf314/git-agecrypt/internal/ui"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("Error:"), err)
		os.Exit(1)
	}
}
