// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"gitlab.com/accumulatenetwork/starledger/internal/logging"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

// TruncateBadger controls whether Badger is configured to truncate corrupted
// data. Especially on Windows, if the process is terminated abruptly, setting
// this may be necessary to recover the state of the system.
var TruncateBadger = false

// Database is a Badger-backed key-value store.
type Database struct {
	badger *badger.DB
	logger logging.OptionalLogger
	ready  bool
	mu     sync.RWMutex
}

var _ keyvalue.Store = (*Database)(nil)

// New opens a Badger database at the given path. The logger may be nil.
func New(filepath string, logger logging.Logger) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(Slogger{logging.OptionalLogger{L: logger}})

	// Truncate corrupted data
	if TruncateBadger {
		opts = opts.WithTruncate(true)
	}

	d := new(Database)
	d.logger.Set(logger, "module", "badger")
	d.ready = true

	// Open Badger
	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, err
	}
	mDbOpen.Inc()

	// Run GC every hour
	go d.gc()

	return d, nil
}

func (d *Database) Get(key []byte) ([]byte, error) {
	l, err := d.lock(false)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	var value []byte
	err = d.badger.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, errors.NotFound.WithFormat("key %x not found", key)
	default:
		return nil, errors.UnknownError.WithFormat("get %x: %w", key, err)
	}
}

func (d *Database) Put(key, value []byte) error {
	return d.PutAll([]keyvalue.Entry{{Key: key, Value: value}})
}

func (d *Database) PutAll(entries []keyvalue.Entry) error {
	l, err := d.lock(false)
	if err != nil {
		return err
	}
	defer l.Unlock()

	// Use a write batch to commit all the entries as one unit
	wr := d.badger.NewWriteBatch()
	defer wr.Cancel()

	for _, e := range entries {
		err = wr.Set(e.Key, e.Value)
		if err != nil {
			return err
		}
	}

	return wr.Flush()
}

// Close
// Close the underlying database
func (d *Database) Close() error {
	if l, err := d.lock(true); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	d.ready = false
	mDbOpen.Dec()
	return d.badger.Close()
}

func (d *Database) gc() {
	for {
		// GC every hour
		time.Sleep(time.Hour)

		// Still open?
		l, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		start := time.Now()
		err = d.badger.RunValueLogGC(0.5)
		switch {
		case err == nil:
			mGcRun.Inc()
			mGcDuration.Set(time.Since(start).Seconds())
		case errors.Is(err, badger.ErrNoRewrite):
			// Nothing to reclaim
		default:
			d.logger.Error("Badger GC failed", "error", err)
		}

		// Release the lock
		l.Unlock()
	}
}

// lock acquires a lock on the ready mutex and checks for readiness. This
// prevents race conditions between Get/Put and Close, which can cause panics.
func (d *Database) lock(closing bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !closing {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, errors.InternalError.With("database not open")
	}

	return l, nil
}

// Slogger forwards Badger's log output to the ledger's logger.
type Slogger struct {
	logger logging.OptionalLogger
}

func (l Slogger) format(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	return strings.TrimRight(s, "\n")
}

func (l Slogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(l.format(format, args...), "module", "badger")
}

func (l Slogger) Warningf(format string, args ...interface{}) {
	l.logger.Info(l.format(format, args...), "module", "badger")
}

func (l Slogger) Infof(format string, args ...interface{}) {
	l.logger.Info(l.format(format, args...), "module", "badger")
}

func (l Slogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(l.format(format, args...), "module", "badger")
}
