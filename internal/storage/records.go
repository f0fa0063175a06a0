package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
)

// RecordStore is the request/response façade over the database. Every
// operation pays a fixed simulated round-trip latency before it touches
// Badger, and each namespace holds exactly one JSON record.
type RecordStore struct {
	db       *DB
	latency  time.Duration
	maxBytes int

	mu     sync.Mutex
	queues map[model.Namespace]*sync.Mutex
}

// RecordOptions configures a RecordStore.
type RecordOptions struct {
	// Latency is the simulated round-trip delay.
	Latency time.Duration
	// MaxRecordBytes rejects larger serialized records. Zero disables the check.
	MaxRecordBytes int
}

// NewRecordStore creates a record store over db.
func NewRecordStore(db *DB, opts RecordOptions) *RecordStore {
	return &RecordStore{
		db:       db,
		latency:  opts.Latency,
		maxBytes: opts.MaxRecordBytes,
		queues:   make(map[model.Namespace]*sync.Mutex),
	}
}

// Read returns the last written value of ns, or its seed default when no
// record exists. Namespaces without a seed read as JSON null.
func (s *RecordStore) Read(ctx context.Context, ns model.Namespace) (json.RawMessage, error) {
	data, found, err := s.load(ctx, ns)
	if err != nil {
		return nil, err
	}
	if found {
		return data, nil
	}
	seed, ok := model.Seed(ns)
	if !ok {
		return json.RawMessage("null"), nil
	}
	data, err = json.Marshal(seed)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("encode", "seed "+string(ns), err)
	}
	return data, nil
}

// Write serializes and persists v as the record of ns, returning the stored bytes.
func (s *RecordStore) Write(ctx context.Context, ns model.Namespace, v any) (json.RawMessage, error) {
	if !ns.Valid() {
		return nil, errors.NotFound(errors.ErrUnknownNamespace, string(ns))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("encode", "write "+string(ns), err)
	}
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return nil, errors.NewSystemErrorWithOp("write",
			fmt.Sprintf("record %s is %d bytes, limit %d", ns, len(data), s.maxBytes),
			errors.ErrQuotaExceeded)
	}
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := s.db.Store(ns.Key(), data); err != nil {
		return nil, errors.NewSystemErrorWithOp("write", "persist "+string(ns),
			errors.WrapDiskFull(err, "write", s.db.Path()))
	}
	logging.LogOperation(ctx, "write", start, logging.KeyNamespace, string(ns), logging.KeyBytes, len(data))
	return data, nil
}

// Remove deletes the record of ns so it reads as its seed again. It waits
// for any Update cycle running on ns.
func (s *RecordStore) Remove(ctx context.Context, ns model.Namespace) error {
	if !ns.Valid() {
		return errors.NotFound(errors.ErrUnknownNamespace, string(ns))
	}
	q := s.queue(ns)
	q.Lock()
	defer q.Unlock()

	if err := s.roundTrip(ctx); err != nil {
		return err
	}
	start := time.Now()
	if err := s.db.Drop(ns.Key()); err != nil {
		return errors.NewSystemErrorWithOp("remove", "remove "+string(ns), err)
	}
	logging.LogOperation(ctx, "remove", start, logging.KeyNamespace, string(ns))
	return nil
}

// Exists reports whether ns holds a written record.
func (s *RecordStore) Exists(ctx context.Context, ns model.Namespace) (bool, error) {
	if !ns.Valid() {
		return false, errors.NotFound(errors.ErrUnknownNamespace, string(ns))
	}
	if err := s.roundTrip(ctx); err != nil {
		return false, err
	}
	found, err := s.db.Has(ns.Key())
	if err != nil {
		return false, errors.NewSystemErrorWithOp("read", "check "+string(ns), err)
	}
	return found, nil
}

// Stored lists the namespaces that currently hold a written record.
func (s *RecordStore) Stored(ctx context.Context) ([]model.Namespace, error) {
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}
	prefix := model.Namespace("").Key()
	keys, err := s.db.Keys(prefix)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("list", "list namespaces", err)
	}
	out := make([]model.Namespace, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.Namespace(strings.TrimPrefix(k, prefix)))
	}
	return out, nil
}

func (s *RecordStore) load(ctx context.Context, ns model.Namespace) ([]byte, bool, error) {
	if !ns.Valid() {
		return nil, false, errors.NotFound(errors.ErrUnknownNamespace, string(ns))
	}
	if err := s.roundTrip(ctx); err != nil {
		return nil, false, err
	}

	start := time.Now()
	data, err := s.db.Fetch(ns.Key())
	if err != nil {
		if IsErrKeyNotFound(err) {
			logging.LogOperation(ctx, "read", start, logging.KeyNamespace, string(ns), logging.KeyStatus, "default")
			return nil, false, nil
		}
		return nil, false, errors.NewSystemErrorWithOp("read", "load "+string(ns), err)
	}
	logging.LogOperation(ctx, "read", start, logging.KeyNamespace, string(ns), logging.KeyBytes, len(data))
	return data, true, nil
}

// roundTrip models the network cost of one request. A context cancelled
// before the request is issued aborts it; once issued it always completes.
func (s *RecordStore) roundTrip(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	return nil
}

// queue returns the serialization lock of ns.
func (s *RecordStore) queue(ns model.Namespace) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queues[ns]
	if !ok {
		q = &sync.Mutex{}
		s.queues[ns] = q
	}
	return q
}

// Get reads ns and decodes it into T.
func Get[T any](ctx context.Context, s *RecordStore, ns model.Namespace) (T, error) {
	var v T
	data, err := s.Read(ctx, ns)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.NewSystemErrorWithOp("decode", "read "+string(ns), err)
	}
	return v, nil
}

// Lookup reads ns without falling back to a seed. found is false when no
// record has been written.
func Lookup[T any](ctx context.Context, s *RecordStore, ns model.Namespace) (v T, found bool, err error) {
	data, found, err := s.load(ctx, ns)
	if err != nil || !found {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, errors.NewSystemErrorWithOp("decode", "read "+string(ns), err)
	}
	return v, true, nil
}

// Put writes v to ns and returns it unchanged.
func Put[T any](ctx context.Context, s *RecordStore, ns model.Namespace, v T) (T, error) {
	if _, err := s.Write(ctx, ns, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Update runs a read-modify-write cycle on ns while holding the namespace
// queue, so concurrent cycles on the same namespace never lose each other's
// writes. fn reports whether the result must be persisted. Plain Read and
// Write calls do not take the queue.
func Update[T any](ctx context.Context, s *RecordStore, ns model.Namespace, fn func(cur T) (next T, write bool, err error)) (T, error) {
	q := s.queue(ns)
	q.Lock()
	defer q.Unlock()

	cur, err := Get[T](ctx, s, ns)
	if err != nil {
		return cur, err
	}
	next, write, err := fn(cur)
	if err != nil {
		return cur, err
	}
	if !write {
		return next, nil
	}
	return Put(ctx, s, ns, next)
}
