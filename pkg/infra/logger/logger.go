package logger

import (
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const logFile = "logs/sentinel.log"

// NewLogger builds the process-wide JSON logger. Entries go to the log file
// through a non-blocking buffered writer and are mirrored to the console.
func NewLogger() *logrus.Logger {
	l := logrus.New()

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	if os.Getenv("LOG_LEVEL") == "debug" {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	if err := os.MkdirAll("logs", 0750); err != nil {
		log.Fatalf("failed to create logs directory: %v", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		log.Fatalf("failed to initialize async log writer: %v", err)
	}
	l.SetOutput(asyncWriter)

	l.AddHook(NewConsoleHook())

	return l
}
