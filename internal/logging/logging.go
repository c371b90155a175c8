package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup returns a JSON slog logger writing to stdout and a rotating
// file under logDir. An empty logDir disables the file output.
func Setup(logDir string) (*slog.Logger, error) {
	var out io.Writer = os.Stdout

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "app.log"),
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
	}

	logger := slog.New(slog.NewJSONHandler(out, nil))
	slog.SetDefault(logger)
	return logger, nil
}
