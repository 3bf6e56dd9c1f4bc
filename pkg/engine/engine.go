package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"immichclient/internal/logging"
	"immichclient/pkg/asset"
	"immichclient/pkg/uploader"
)

func NewWorker(id int, upload UploadFunc, inputQueue chan *asset.Asset, outputQueue chan uploader.Outcome, halt *atomic.Bool, wg *sync.WaitGroup) *UploadWorker {
	return &UploadWorker{
		Id:          id,
		Upload:      upload,
		InputQueue:  inputQueue,
		OutputQueue: outputQueue,
		Halt:        halt,
		wg:          wg,
	}
}

func (worker *UploadWorker) Start() {
	logging.GlobalLogger.Debug().Int("worker", worker.Id).Msg("started upload worker")

	worker.wg.Add(1)
	go func() {
		defer worker.wg.Done()
		for a := range worker.InputQueue {
			if worker.Halt.Load() {
				// Sink is gone, nobody can receive the outcome.
				continue
			}
			worker.OutputQueue <- worker.Upload(a)
		}
	}()
}

// New builds an Engine with the given concurrency limit and upload
// function. The limit is validated here, before any work can start.
func New(limit int, upload UploadFunc) (*Engine, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConfig, limit)
	}
	return &Engine{Limit: limit, Upload: upload}, nil
}

// Run consumes source until it is exhausted and delivers exactly one
// outcome per item to sink, in completion order. At most Limit uploads are
// in flight at any instant; the bounded queues mean a slow sink throttles
// pulling from the source.
//
// Individual upload failures are data (a StatusFailed outcome), never an
// error from Run. Run returns an error only when the sink rejects a
// delivery or ctx is cancelled; in both cases uploads already in flight are
// drained before it returns. Cancellation is only checked before pulling
// the next item, so items already pulled from source still complete and
// report.
func (e *Engine) Run(ctx context.Context, source Source, sink Sink) error {
	logging.GlobalLogger.Debug().Int("limit", e.Limit).Msg("starting batch upload")

	inputQueue := make(chan *asset.Asset, e.Limit)
	outputQueue := make(chan uploader.Outcome, e.Limit)
	halt := &atomic.Bool{}

	wg := &sync.WaitGroup{}
	for i := 0; i < e.Limit; i++ {
		NewWorker(i, e.Upload, inputQueue, outputQueue, halt, wg).Start()
	}

	// Single collector serializes sink delivery across workers.
	var sinkErr error
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for outcome := range outputQueue {
			if halt.Load() {
				continue
			}
			if err := sink.Deliver(outcome); err != nil {
				halt.Store(true)
				sinkErr = fmt.Errorf("%w: %v", ErrSinkClosed, err)
				logging.GlobalLogger.Error().Err(err).Msg("result sink rejected delivery, draining batch")
			}
		}
	}()

	// The feeder below is the only reader of source.
	cancelled := false
feed:
	for {
		if halt.Load() {
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
			logging.GlobalLogger.Warn().Msg("batch cancelled, draining in-flight uploads")
			break feed
		default:
		}

		item, ok := source.Next()
		if !ok {
			break
		}
		if item.Err != nil {
			// Construction failures skip the worker pool entirely.
			outputQueue <- uploader.Failed(item.Ref, item.Err)
			continue
		}
		inputQueue <- item.Asset
	}

	close(inputQueue)
	wg.Wait()
	close(outputQueue)
	<-collectorDone

	if sinkErr != nil {
		return sinkErr
	}
	if cancelled {
		return ctx.Err()
	}
	logging.GlobalLogger.Debug().Msg("batch upload drained")
	return nil
}
