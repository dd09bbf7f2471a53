package logsvc

import (
	"github.com/sirupsen/logrus"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/session"
)

// LogrusLogger is a structured core.Logger. A session.Session in the args
// tags the entry with the current identity; maps become fields; errors go in
// the standard error field.
type LogrusLogger struct {
	log *logrus.Logger
}

var _ core.Logger = (*LogrusLogger)(nil)

func NewLogrusLogger(conf *core.Config) *LogrusLogger {
	l := logrus.New()
	if conf.Debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return &LogrusLogger{log: l}
}

// expected args: error, map[string]interface{}, session.Session
func (l LogrusLogger) entry(args []interface{}) *logrus.Entry {
	entry := logrus.NewEntry(l.log)
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			entry = entry.WithError(v)
		case map[string]interface{}:
			entry = entry.WithFields(v)
		case session.Session:
			entry = entry.WithFields(logrus.Fields{"email": v.Email, "role": v.Role.String()})
		default:
			entry = entry.WithField("extra", v)
		}
	}
	return entry
}

func (l LogrusLogger) Debug(msg string, args ...interface{}) { l.entry(args).Debug(msg) }
func (l LogrusLogger) Info(msg string, args ...interface{})  { l.entry(args).Info(msg) }
func (l LogrusLogger) Warn(msg string, args ...interface{})  { l.entry(args).Warn(msg) }
func (l LogrusLogger) Error(msg string, args ...interface{}) { l.entry(args).Error(msg) }
func (l LogrusLogger) Fatal(msg string, args ...interface{}) { l.entry(args).Fatal(msg) }
