package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dslh/mcp-imagegen/internal/cmd"
)

func main() {
	if err := cmd.New().Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
