package events

import (
	"context"
	"sync"
)

// Log is the in-memory append-only audit log. Appends assign sequence numbers
// and fan out to subscribers; Replay returns a copy of the history so
// collaborators can rebuild their view at any time.
type Log struct {
	mu      sync.RWMutex
	records []Record
	subs    []func(Record)
	nextSeq uint64
	limit   int
}

// NewLog creates an empty audit log with unbounded retention.
func NewLog() *Log {
	return &Log{nextSeq: 1}
}

// NewBoundedLog creates a log that retains at most limit records for replay;
// older records are dropped as new ones arrive. Sequence numbers keep
// increasing across drops, and subscriber fan-out is unaffected. Use this
// when the log serves live fan-out and replay is covered elsewhere.
func NewBoundedLog(limit int) *Log {
	return &Log{nextSeq: 1, limit: limit}
}

// Append assigns the next sequence to rec, stores it and notifies
// subscribers. Subscribers are invoked synchronously under no lock ordering
// guarantees beyond append order.
func (l *Log) Append(ctx context.Context, rec Record) error {
	l.mu.Lock()
	rec.Sequence = l.nextSeq
	l.nextSeq++
	l.records = append(l.records, rec)
	if l.limit > 0 && len(l.records) > l.limit {
		kept := make([]Record, l.limit)
		copy(kept, l.records[len(l.records)-l.limit:])
		l.records = kept
	}
	subs := make([]func(Record), len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	for _, fn := range subs {
		fn(rec)
	}
	return nil
}

// Subscribe registers a callback invoked for every record appended after the
// call. Replay first, then subscribe, to observe the full history.
func (l *Log) Subscribe(fn func(Record)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

// Replay returns a copy of every retained record, in append order.
func (l *Log) Replay() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// ReplayAfter returns retained records with sequence strictly greater than
// seq.
func (l *Log) ReplayAfter(seq uint64) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Record
	for _, r := range l.records {
		if r.Sequence > seq {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of records currently retained.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Composite fans appends out to several recorders in order; the first failure
// aborts the append so a failed durable write fails the enclosing transaction.
type Composite struct {
	recorders []Recorder
}

// NewComposite builds a recorder that appends to each given recorder.
func NewComposite(recorders ...Recorder) *Composite {
	return &Composite{recorders: recorders}
}

func (c *Composite) Append(ctx context.Context, rec Record) error {
	for _, r := range c.recorders {
		if err := r.Append(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Deferred forwards appended records to the wrapped log via a scheduler,
// typically db.AfterCommit, so live subscribers never observe records from a
// transaction that later rolls back.
type Deferred struct {
	log      *Log
	schedule func(ctx context.Context, fn func())
}

// NewDeferred wraps log so appends are delivered through schedule.
func NewDeferred(log *Log, schedule func(ctx context.Context, fn func())) *Deferred {
	return &Deferred{log: log, schedule: schedule}
}

func (d *Deferred) Append(ctx context.Context, rec Record) error {
	d.schedule(ctx, func() {
		// the wrapped in-memory log cannot fail an append
		_ = d.log.Append(context.Background(), rec)
	})
	return nil
}
