package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := RootCommand().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
