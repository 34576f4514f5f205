package logger

import "time"

type Logger interface {
	Debug(msg string, args ...Field)
	Info(msg string, args ...Field)
	Warn(msg string, args ...Field)
	Error(msg string, args ...Field)
}

type Field struct {
	Key string
	Val any
}

func String(key, val string) Field {
	return Field{Key: key, Val: val}
}

func Int(key string, val int) Field {
	return Field{Key: key, Val: val}
}

func Int64(key string, val int64) Field {
	return Field{Key: key, Val: val}
}

func Uint(key string, val uint) Field {
	return Field{Key: key, Val: val}
}

func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Val: val}
}

func Any(key string, val any) Field {
	return Field{Key: key, Val: val}
}

func Error(err error) Field {
	return Field{Key: "error", Val: err}
}
