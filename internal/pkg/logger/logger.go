package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewDefault 建立輸出到 stdout 的 JSON logger。
func NewDefault(level string) *slog.Logger {
	return New(os.Stdout, level)
}

// New 建立 JSON logger；無法辨識的等級視為 info。
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
