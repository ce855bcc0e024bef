package logger

import (
	"time"
)

// Field represents a typed key-value pair for structured logging
type Field struct {
	Key   string
	Type  FieldType
	Value any
}

// FieldType defines the type of a log field
type FieldType int

const (
	StringType FieldType = iota
	IntType
	BoolType
	ErrorType
	DurationType
	TimeType
	AnyType
	StringsType
)

// Logger defines the interface for structured logging used across folio
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// With returns a child logger that always carries the given fields
	With(fields ...Field) Logger
	Sync() error
}

// Options selects the encoders and outputs of a logger
type Options struct {
	// Development switches the console output to a human-readable encoder
	Development bool
	// File is an optional path for a rotated JSON log file
	File string
}

func String(key, value string) Field {
	return Field{Key: key, Type: StringType, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Type: IntType, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Type: BoolType, Value: value}
}

// Err attaches an error under the conventional "error" key
func Err(err error) Field {
	return Field{Key: "error", Type: ErrorType, Value: err}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Type: DurationType, Value: value}
}

func Time(key string, value time.Time) Field {
	return Field{Key: key, Type: TimeType, Value: value}
}

func Any(key string, value any) Field {
	return Field{Key: key, Type: AnyType, Value: value}
}

func Strings(key string, value []string) Field {
	return Field{Key: key, Type: StringsType, Value: value}
}
