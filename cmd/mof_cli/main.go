package main

import (
	"os"

	"github.com/SscSPs/mof_report_service/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
