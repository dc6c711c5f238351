package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"
)

// Open opens the badger database behind the post store.
// An empty path opens an in-memory database.
func Open(path string, logger logr.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.
		WithLogger(badgerLogger{log: logger.WithName("badger")}).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// badgerLogger routes badger's printf logging into logr.
type badgerLogger struct {
	log logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(errors.New(l.msg(format, args)), "badger error")
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Info(l.msg(format, args))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.V(1).Info(l.msg(format, args))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.V(2).Info(l.msg(format, args))
}

func (badgerLogger) msg(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
