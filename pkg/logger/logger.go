// Package logger configures logrus and carries a request-scoped entry in
// the context.
package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// New builds the root logger for env
func New(env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	switch env {
	case "development", "local", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// Into stores entry in ctx
func Into(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// From returns the entry stored in ctx, or one built on the standard logger
func From(ctx context.Context) *logrus.Entry {
	if v := ctx.Value(ctxKey{}); v != nil {
		if entry, ok := v.(*logrus.Entry); ok && entry != nil {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
