package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/tipline/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tipline: %v\n", err)
		os.Exit(1)
	}
}
