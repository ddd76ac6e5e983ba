package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

var (
	ErrorLogger *log.Logger
	PanicLogger *log.Logger
)

// InitLogger opens the file-backed error and panic logs under ./logs.
func InitLogger() error {
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	errorLogFile, err := os.OpenFile(filepath.Join(logsDir, "errors.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open error log file: %v", err)
	}

	panicLogFile, err := os.OpenFile(filepath.Join(logsDir, "panics.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open panic log file: %v", err)
	}

	ErrorLogger = log.New(errorLogFile, "", 0)
	PanicLogger = log.New(panicLogFile, "", 0)

	return nil
}

// LogError records a handled error with its call site. Safe to call
// before InitLogger (drops the message).
func LogError(err error, context string) {
	if ErrorLogger == nil {
		return
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
		line = 0
	}

	ErrorLogger.Printf("[%s] ERROR in %s:%d - %s: %v",
		time.Now().Format("2006-01-02 15:04:05"), filepath.Base(file), line, context, err)
}

func LogPanic(recovered interface{}, context string) {
	if PanicLogger == nil {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}

	PanicLogger.Printf("[%s] PANIC in %s:%d - %s: %v",
		time.Now().Format("2006-01-02 15:04:05"), filepath.Base(file), line, context, recovered)
}
