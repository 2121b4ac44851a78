package logger

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called.
var Log = zap.NewNop().Sugar()

var levelsByName = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
	"fatal":   zapcore.FatalLevel,
}

func Init(level string) error {
	lvl, ok := levelsByName[level]
	if !ok {
		return fmt.Errorf("unknown log level: %s", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl.Sugar()

	return nil
}

func Sync() error {
	return Log.Sync()
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.responseData.size += size

	return size, err
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.responseData.status = statusCode
}

func WithLoggingHTTPMiddleware(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		start := time.Now()

		data := &responseData{status: http.StatusOK}
		lw := loggingResponseWriter{
			ResponseWriter: response,
			responseData:   data,
		}

		h.ServeHTTP(&lw, request)

		Log.Infoln(
			"uri", request.RequestURI,
			"method", request.Method,
			"status", data.status,
			"size", data.size,
			"duration", time.Since(start),
		)
	}

	return http.HandlerFunc(middleware)
}
