package main

import (
	"os"

	"github.com/yoanbernabeu/localpages/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
