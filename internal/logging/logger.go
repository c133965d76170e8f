package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kgzivf/blogbackend/pkg"
)

const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 5
	logFileMaxAgeDays = 14
)

type LoggerSetupParams struct {
	LogPath       string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	ServiceName   string
	Environment   string
	SentryEnabled bool
	SentryDSN     string
}

// Setup configures the global logrus logger. Logs go to stdout when no path
// is set, otherwise to a rotated file (and stdout too, if asked).
func Setup(params LoggerSetupParams) {
	logrus.SetLevel(ParseLevel(params.LogLevel))
	logrus.SetFormatter(newFormatter(params.LogFormatJSON))
	logrus.SetOutput(newOutput(params.LogPath, params.LogToStdout))

	if params.SentryEnabled {
		setupSentry(params)
	}
}

// ParseLevel falls back to info for anything logrus does not know.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

func newFormatter(json bool) logrus.Formatter {
	if json {
		return &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
}

func newOutput(path string, toStdout bool) io.Writer {
	if path == "" {
		return os.Stdout
	}
	if filepath.Ext(path) != ".log" {
		path += ".log"
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}
	if !toStdout {
		return file
	}
	return pkg.NewTeeWriter(os.Stdout, file)
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              params.SentryDSN,
		Environment:      params.Environment,
		ServerName:       params.ServiceName,
		AttachStacktrace: true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Debugln("sentry hook installed")
}
