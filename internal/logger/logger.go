package logger

import (
	"context"
	"github.com/maxaizer/sr-vacancies/internal/config"
	"github.com/maxaizer/sr-vacancies/internal/metrics"
	"github.com/maxaizer/sr-vacancies/pkg/loki"
	log "github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
	"time"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeUpstream = "upstream_api"
	ErrorTypeCache    = "cache"
	ErrorTypeHTTP     = "http"
	ErrorTypeInternal = "internal"
)

var (
	logFile    *os.File
	lokiPusher *loki.Pusher
)

type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		errorType = "unknown"
	}

	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func Setup(ctx context.Context, cfg config.LoggerConfig) {

	writers := []io.Writer{os.Stdout}
	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0755); err != nil {
			log.Fatalf("Failed to create log directory: %v", err)
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		logFile = file
		writers = append(writers, file)
	}
	log.SetOutput(io.MultiWriter(writers...))

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
	})
	log.SetLevel(ParseLevel(cfg.LogLevel))
	log.AddHook(&prometheusHook{})

	if cfg.LokiURL == "" {
		return
	}

	err := addLokiHook(ctx, loki.Config{
		Url:          cfg.LokiURL,
		Username:     cfg.LokiUser,
		Password:     cfg.LokiPassword,
		BatchMaxWait: 5 * time.Second,
		Labels:       map[string]string{"app": cfg.AppName},
	}, log.GetLevel())
	if err != nil {
		log.WithField(ErrorTypeField, ErrorTypeInternal).Errorf("can't enable loki logging: %v", err)
	}
}

func ParseLevel(level config.LogLevel) log.Level {
	switch level {
	case config.LevelDebug:
		return log.DebugLevel
	case config.LevelWarning:
		return log.WarnLevel
	case config.LevelError:
		return log.ErrorLevel
	case config.LevelFatal:
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func Cleanup() {
	if lokiPusher != nil {
		lokiPusher.Stop()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}
