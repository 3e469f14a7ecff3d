package logging

import (
	"github.com/sirupsen/logrus"
)

type Fields map[string]interface{}

// Loggerはhandler/middlewareに注入するログの約束。
// usecaseはログを書かない（呼び出し側の責務）。
type Logger interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
	// 認証・認可まわりのイベント用チャンネル
	Security(msg string, fields Fields)
}

type logrusLogger struct {
	base *logrus.Logger
}

// Newはlogrus実装を返す。prodはJSON、それ以外はテキスト。
func New(env string) Logger {
	l := logrus.New()

	if env == "prod" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &logrusLogger{base: l}
}

func (l *logrusLogger) Info(msg string, fields Fields) {
	l.base.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields Fields) {
	l.base.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields Fields) {
	l.base.WithFields(logrus.Fields(fields)).Error(msg)
}

func (l *logrusLogger) Security(msg string, fields Fields) {
	l.base.WithFields(logrus.Fields(fields)).WithField("channel", "security").Warn(msg)
}

type nopLogger struct{}

// Nopはテスト用の何もしないLogger。
func Nop() Logger {
	return &nopLogger{}
}

func (nopLogger) Info(string, Fields)     {}
func (nopLogger) Warn(string, Fields)     {}
func (nopLogger) Error(string, Fields)    {}
func (nopLogger) Security(string, Fields) {}
