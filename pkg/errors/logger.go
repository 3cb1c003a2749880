package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger 结构化日志器接口
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	WithContext(ctx context.Context) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithRequestID(requestID string) Logger
	WithOperation(operation string) Logger

	// LogOperation 记录一次上游操作的耗时与结果
	LogOperation(operation string, startTime time.Time, err error)
	LogError(err error, context ...interface{})

	SetLevel(level string) error
	SetFormatter(format string) error

	// GetUnderlying 获取底层 logrus 实例
	GetUnderlying() *logrus.Logger
}

// Fields 日志字段
type Fields map[string]interface{}

// StructuredLogger 基于 logrus 的结构化日志器
type StructuredLogger struct {
	logger    *logrus.Logger
	requestID string
	operation string
	fields    Fields
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	// Output 为空时写入 stderr
	Output io.Writer `json:"-" yaml:"-"`
}

// DefaultLoggerConfig 默认日志配置
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:  "info",
		Format: "json",
	}
}

// NewLogger 创建新的结构化日志器
func NewLogger(config *LoggerConfig) (Logger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}
	logger.SetLevel(level)

	formatter, err := createFormatter(config.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}
	logger.SetFormatter(formatter)

	if config.Output != nil {
		logger.SetOutput(config.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	return FromLogrus(logger), nil
}

// FromLogrus 包装已有的 logrus 实例
func FromLogrus(logger *logrus.Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
		fields: make(Fields),
	}
}

// NewNopLogger 返回丢弃所有输出的日志器
func NewNopLogger() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return FromLogrus(logger)
}

func createFormatter(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}, nil
	case "text":
		return &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

func (l *StructuredLogger) logWithFields(level logrus.Level, msg string, keysAndValues ...interface{}) {
	if !l.logger.IsLevelEnabled(level) {
		return
	}

	fields := make(logrus.Fields, len(l.fields)+len(keysAndValues)/2+2)
	for k, v := range l.fields {
		fields[k] = v
	}
	if l.requestID != "" {
		fields["request_id"] = l.requestID
	}
	if l.operation != "" {
		fields["operation"] = l.operation
	}
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}

	l.logger.WithFields(fields).Log(level, msg)
}

func (l *StructuredLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.logWithFields(logrus.DebugLevel, msg, keysAndValues...)
}

func (l *StructuredLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.logWithFields(logrus.InfoLevel, msg, keysAndValues...)
}

func (l *StructuredLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.logWithFields(logrus.WarnLevel, msg, keysAndValues...)
}

func (l *StructuredLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.logWithFields(logrus.ErrorLevel, msg, keysAndValues...)
}

func (l *StructuredLogger) WithContext(ctx context.Context) Logger {
	newLogger := l.clone()
	if requestID := GetRequestID(ctx); requestID != "" {
		newLogger.requestID = requestID
	}
	if operation := GetOperation(ctx); operation != "" {
		newLogger.operation = operation
	}
	return newLogger
}

func (l *StructuredLogger) WithField(key string, value interface{}) Logger {
	newLogger := l.clone()
	newLogger.fields[key] = value
	return newLogger
}

func (l *StructuredLogger) WithFields(fields Fields) Logger {
	newLogger := l.clone()
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	return newLogger
}

func (l *StructuredLogger) WithError(err error) Logger {
	newLogger := l.clone()
	if err == nil {
		return newLogger
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		newLogger.fields["error_type"] = string(appErr.Type)
		newLogger.fields["error_code"] = appErr.Code
		if appErr.Details != "" {
			newLogger.fields["error_details"] = appErr.Details
		}
	}
	newLogger.fields["error"] = err.Error()
	return newLogger
}

func (l *StructuredLogger) WithRequestID(requestID string) Logger {
	newLogger := l.clone()
	newLogger.requestID = requestID
	return newLogger
}

func (l *StructuredLogger) WithOperation(operation string) Logger {
	newLogger := l.clone()
	newLogger.operation = operation
	return newLogger
}

func (l *StructuredLogger) LogOperation(operation string, startTime time.Time, err error) {
	duration := time.Since(startTime)

	if err == nil {
		l.Debugw("Operation completed",
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
		)
		return
	}

	fields := []interface{}{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
		"error", err.Error(),
	}
	if t := TypeOf(err); t != "" {
		fields = append(fields, "error_type", string(t))
	}

	// 调用方的参数错误不算服务端故障
	if IsClientError(err) {
		l.Warnw("Operation rejected", fields...)
		return
	}
	l.Errorw("Operation failed", fields...)
}

func (l *StructuredLogger) LogError(err error, context ...interface{}) {
	fields := []interface{}{"error", err.Error()}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		fields = append(fields,
			"error_type", string(appErr.Type),
			"error_code", appErr.Code,
		)
		if appErr.Details != "" {
			fields = append(fields, "error_details", appErr.Details)
		}
		for k, v := range appErr.Context {
			if k == ContextKeyRaw {
				continue
			}
			fields = append(fields, "context_"+k, v)
		}
	}

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			fields = append(fields, key, context[i+1])
		}
	}

	l.Errorw("Application error occurred", fields...)
}

func (l *StructuredLogger) SetLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", level, err)
	}
	l.logger.SetLevel(logLevel)
	return nil
}

func (l *StructuredLogger) SetFormatter(format string) error {
	formatter, err := createFormatter(format)
	if err != nil {
		return fmt.Errorf("failed to create formatter: %w", err)
	}
	l.logger.SetFormatter(formatter)
	return nil
}

// GetUnderlying 获取底层 logrus 实例
func (l *StructuredLogger) GetUnderlying() *logrus.Logger {
	return l.logger
}

func (l *StructuredLogger) clone() *StructuredLogger {
	newFields := make(Fields, len(l.fields))
	for k, v := range l.fields {
		newFields[k] = v
	}

	return &StructuredLogger{
		logger:    l.logger,
		requestID: l.requestID,
		operation: l.operation,
		fields:    newFields,
	}
}
