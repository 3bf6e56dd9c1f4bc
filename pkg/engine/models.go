package engine

import (
	"errors"
	"sync"
	"sync/atomic"

	"immichclient/pkg/asset"
	"immichclient/pkg/uploader"
)

var (
	// ErrInvalidConfig is returned by New when the concurrency limit is
	// below 1. No work is dispatched in that case.
	ErrInvalidConfig = errors.New("concurrency limit must be >= 1")
	// ErrSinkClosed is returned by Run when the result sink rejected a
	// delivery. In-flight uploads are drained first.
	ErrSinkClosed = errors.New("result sink is unusable")
)

// Item is one element of the asset sequence. Either Asset is set, or Err
// carries a construction failure together with Ref, the identifier the
// failure is reported under. Failed items never occupy a worker slot.
type Item struct {
	Asset *asset.Asset
	Ref   string
	Err   error
}

// Source is a lazy, single-pass sequence of Items. The engine guarantees a
// single reader: Next is only ever called from one goroutine, so
// implementations need no internal locking.
type Source interface {
	Next() (Item, bool)
}

// Sink receives outcomes one at a time, in completion order. The engine
// serializes delivery, so implementations need not be safe for concurrent
// use. A non-nil error marks the sink permanently unusable.
type Sink interface {
	Deliver(uploader.Outcome) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(uploader.Outcome) error

func (f SinkFunc) Deliver(o uploader.Outcome) error { return f(o) }

// ChannelSink delivers every outcome into ch. Deliver blocks while the
// channel is full; a slow consumer throttles the whole pipeline through the
// engine's bounded queues.
func ChannelSink(ch chan<- uploader.Outcome) Sink {
	return SinkFunc(func(o uploader.Outcome) error {
		ch <- o
		return nil
	})
}

// UploadFunc performs one upload. uploader.Upload bound to a session is the
// production implementation; tests inject counters and failure injection
// here.
type UploadFunc func(*asset.Asset) uploader.Outcome

// UploadWorker drains assets from InputQueue, uploads them one at a time
// and pushes the outcome to OutputQueue. When Halt is set, remaining queued
// assets are discarded without an upload.
type UploadWorker struct {
	Id          int
	Upload      UploadFunc
	InputQueue  chan *asset.Asset
	OutputQueue chan uploader.Outcome
	Halt        *atomic.Bool
	wg          *sync.WaitGroup
}

// Engine is the bounded-parallel batch uploader. Limit workers are spawned
// per Run call and joined before it returns.
type Engine struct {
	Limit  int
	Upload UploadFunc
}
