package main

import (
	"fmt"
	"os"

	"github.com/maxkimambo/dispatch/cmd"
	apperrors "github.com/maxkimambo/dispatch/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, apperrors.FormatForCLI(err))
		os.Exit(1)
	}
}
