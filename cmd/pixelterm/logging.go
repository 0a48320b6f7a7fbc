package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const logDir = "logs"

// setupLogging routes the standard logger. The terminal owns stdout
// once the screen goes raw, so diagnostics either go to a file (with
// --debug) or nowhere.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, "pixelterm.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	return f
}
