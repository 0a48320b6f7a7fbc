package main

import (
	"io"
	"log"
	"os"
	"testing"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}

	log.Printf("probe entry")
	info, err := os.Stat(logFile.Name())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected the probe entry written to the log file")
	}
}
