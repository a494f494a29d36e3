package chunk

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/df-mc/terragen/worldgen/topology"
	"github.com/google/uuid"
)

// ErrQueueClosed is returned by Submit after Close has been called.
var ErrQueueClosed = errors.New("chunk: generation queue closed")

// Result is the completion of one generation request.
type Result struct {
	ID     uuid.UUID
	Pos    topology.ChunkPos
	Buffer *Buffer
}

type job struct {
	id   uuid.UUID
	pos  topology.ChunkPos
	done func(Result)
}

// Queue runs chunk generation on a pool of workers. Requests are
// tagged with a unique token and completed via callback on a worker
// goroutine, so a slow consumer never stalls generation of other
// chunks. Because the Generator is stateless, any worker may pick up
// any request and results are identical regardless of scheduling.
type Queue struct {
	gen  *Generator
	log  *slog.Logger
	jobs chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewQueue starts a queue with the given worker count and backlog
// size. Non-positive values fall back to 1 worker and an unbuffered
// backlog.
func NewQueue(gen *Generator, workers, backlog int, log *slog.Logger) *Queue {
	if workers < 1 {
		workers = 1
	}
	if backlog < 0 {
		backlog = 0
	}
	if log == nil {
		log = slog.Default()
	}
	q := &Queue{gen: gen, log: log, jobs: make(chan job, backlog)}
	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	return q
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for j := range q.jobs {
		buf := q.gen.Generate(j.pos)
		if j.done != nil {
			j.done(Result{ID: j.id, Pos: j.pos, Buffer: buf})
		}
	}
}

// Submit enqueues generation of the chunk at pos and returns the
// request token. done is invoked exactly once, on a worker goroutine.
// When the backlog is full Submit blocks until a worker frees a slot,
// logging the saturation so sustained back-pressure is visible.
func (q *Queue) Submit(pos topology.ChunkPos, done func(Result)) (uuid.UUID, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return uuid.Nil, ErrQueueClosed
	}
	id := uuid.New()
	j := job{id: id, pos: pos, done: done}
	select {
	case q.jobs <- j:
	default:
		q.log.Debug("generation queue saturated", "pos", pos, "backlog", cap(q.jobs))
		q.jobs <- j
	}
	return id, nil
}

// Close stops accepting requests and waits for all queued work to
// finish. Pending callbacks still run.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}
