package storage

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-pong/internal/pong"
)

// recorderBuffer is how many points may be queued before new ones are
// dropped.
const recorderBuffer = 64

// Recorder writes points to the store from its own goroutine so that the
// physics task never waits on the database. It implements
// pong.PointRecorder.
type Recorder struct {
	store   *Store
	matchID int64
	logger  *log.Logger

	queue   chan pong.PointEvent
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

// NewRecorder starts a recorder writing points for matchID.
func NewRecorder(store *Store, matchID int64, logger *log.Logger) *Recorder {
	r := &Recorder{
		store:   store,
		matchID: matchID,
		logger:  logger,
		queue:   make(chan pong.PointEvent, recorderBuffer),
		done:    make(chan struct{}),
	}
	go r.loop()
	return r
}

// RecordPoint queues a point. It never blocks.
func (r *Recorder) RecordPoint(ev pong.PointEvent) {
	select {
	case r.queue <- ev:
	default:
		r.dropped.Add(1)
	}
}

// Dropped returns how many points were lost to a full queue.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Close writes the queued points and stops the recorder. RecordPoint must
// not be called after Close.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.queue)
		<-r.done
	})
}

func (r *Recorder) loop() {
	defer close(r.done)
	for ev := range r.queue {
		if _, err := r.store.SavePoint(r.matchID, ev); err != nil {
			r.logger.Error("point not saved", "err", err)
		}
	}
}
