package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"chefwho/internal/models"
)

var (
	// ErrRecorderBusy is returned when the queue is full and the entry was dropped.
	ErrRecorderBusy = errors.New("audit queue is full")
	// ErrRecorderClosed is returned for entries recorded after Close.
	ErrRecorderClosed = errors.New("audit recorder closed")
)

// Sink persists chat log entries.
type Sink interface {
	InsertChatLog(ctx context.Context, entry models.ChatLogEntry) error
}

// Publisher announces stored entries to other listeners.
type Publisher interface {
	PublishChatLog(ctx context.Context, entry models.ChatLogEntry) error
}

type Config struct {
	Workers      int
	QueueSize    int
	WriteTimeout time.Duration
}

// Recorder writes chat log entries from background workers so callers never wait on the store.
type Recorder struct {
	sink      Sink
	publisher Publisher
	timeout   time.Duration
	logger    *slog.Logger

	jobs chan models.ChatLogEntry
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewRecorder starts cfg.Workers goroutines draining a queue of cfg.QueueSize entries.
// publisher may be nil.
func NewRecorder(sink Sink, publisher Publisher, cfg Config, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	r := &Recorder{
		sink:      sink,
		publisher: publisher,
		timeout:   cfg.WriteTimeout,
		logger:    logger,
		jobs:      make(chan models.ChatLogEntry, cfg.QueueSize),
	}
	for i := 0; i < cfg.Workers; i++ {
		r.wg.Add(1)
		go r.work(i)
	}
	return r
}

// Record queues entry without blocking.
func (r *Recorder) Record(entry models.ChatLogEntry) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrRecorderClosed
	}
	select {
	case r.jobs <- entry:
		return nil
	default:
		r.logger.Warn("audit entry dropped", "user_id", entry.UserID, "name", entry.Name)
		return ErrRecorderBusy
	}
}

// Close stops accepting entries and waits for queued ones to be written or ctx to end.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.jobs)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) work(id int) {
	defer r.wg.Done()
	for entry := range r.jobs {
		r.write(id, entry)
	}
}

func (r *Recorder) write(worker int, entry models.ChatLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.sink.InsertChatLog(ctx, entry); err != nil {
		r.logger.Warn("chat log insert failed", "worker", worker, "user_id", entry.UserID, "error", err)
		return
	}
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishChatLog(ctx, entry); err != nil {
		r.logger.Warn("chat log publish failed", "worker", worker, "user_id", entry.UserID, "error", err)
	}
}
