package logger

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const maxBufferSize = 1000

var (
	instance *Logger
	once     sync.Once
)

type LogEntry struct {
	Timestamp time.Time
	Message   string
}

// Logger keeps a bounded in-memory buffer for the in-app logs view and,
// when enabled, mirrors every entry to a rotated log file.
type Logger struct {
	sink    *zap.Logger
	mu      sync.Mutex
	buffer  []LogEntry
	enabled bool
}

// Init sets up the file sink at logPath. When enabled is false the buffer
// still collects entries but nothing is written to disk.
func Init(logPath string, enabled bool) {
	once.Do(func() {
		instance = &Logger{
			buffer:  make([]LogEntry, 0, maxBufferSize),
			enabled: enabled,
		}

		if !enabled {
			instance.sink = zap.NewNop()
			return
		}

		ws := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		})

		enc := zapcore.EncoderConfig{
			TimeKey:        "T",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
			EncodeDuration: zapcore.StringDurationEncoder,
		}

		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, zapcore.DebugLevel)
		instance.sink = zap.New(core)
	})
}

func EnsureInit() {
	if instance == nil {
		Init("", false)
	}
}

// Sync flushes the file sink. Safe to call before exit even when logging
// is disabled.
func Sync() {
	if instance != nil && instance.sink != nil {
		_ = instance.sink.Sync()
	}
}

func addToBuffer(message string) {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if len(instance.buffer) >= maxBufferSize {
		instance.buffer = instance.buffer[1:]
	}
	instance.buffer = append(instance.buffer, LogEntry{
		Timestamp: time.Now(),
		Message:   message,
	})
}

// GetLogs returns a copy of the buffered entries, oldest first.
func GetLogs() []LogEntry {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	logs := make([]LogEntry, len(instance.buffer))
	copy(logs, instance.buffer)
	return logs
}

func Log(message string, args ...interface{}) {
	formatted := fmt.Sprintf("[INFO] "+message, args...)
	addToBuffer(formatted)
	instance.sink.Info(formatted)
}

func LogError(operation, subject string, err error) {
	message := fmt.Sprintf("[ERROR] %s: %s - %v", operation, subject, err)
	addToBuffer(message)
	instance.sink.Error(message)
}
