package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ConversationPurger deletes conversations older than the retention window.
type ConversationPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// ExpiredCleaner deletes expired sessions and reset tokens.
type ExpiredCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// RetentionJob periodically applies the message retention policy and drops
// expired auth records.
type RetentionJob struct {
	purger   ConversationPurger
	cleaner  ExpiredCleaner
	interval time.Duration
	timeout  time.Duration
	log      logrus.FieldLogger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewRetentionJob creates the job. It does nothing until Start is called.
func NewRetentionJob(purger ConversationPurger, cleaner ExpiredCleaner, interval time.Duration, log logrus.FieldLogger) *RetentionJob {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RetentionJob{
		purger:   purger,
		cleaner:  cleaner,
		interval: interval,
		timeout:  5 * time.Minute,
		log:      log,
		now:      time.Now,
	}
}

// Start runs one sweep immediately and then every interval.
func (j *RetentionJob) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		j.log.Debug("Retention job already running")
		return
	}
	j.running = true
	j.stop = make(chan struct{})
	j.done = make(chan struct{})

	j.log.WithField("interval", j.interval.String()).Info("Starting retention job")
	go j.loop(j.stop, j.done)
}

// Stop halts the job and waits for an in-flight sweep to finish. It is safe
// to call more than once.
func (j *RetentionJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	close(j.stop)
	done := j.done
	j.mu.Unlock()

	<-done
	j.log.Info("Retention job stopped")
}

func (j *RetentionJob) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.RunOnce()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			j.RunOnce()
		}
	}
}

// RunOnce performs a single sweep.
func (j *RetentionJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	purged, err := j.purger.PurgeExpired(ctx, j.now())
	if err != nil {
		j.log.WithError(err).Error("Retention sweep failed")
	} else if purged > 0 {
		j.log.WithField("conversations", purged).Info("Expired conversations deleted")
	}

	removed, err := j.cleaner.CleanupExpired(ctx)
	if err != nil {
		j.log.WithError(err).Error("Session cleanup failed")
	} else if removed > 0 {
		j.log.WithField("records", removed).Debug("Expired sessions and reset tokens deleted")
	}
}
