package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/portfolio-backend/internal/logger"
	"github.com/Ananth-NQI/portfolio-backend/internal/services"
	"github.com/Ananth-NQI/portfolio-backend/internal/testutil"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context, time.Time) (int64, error) {
	p.calls.Add(1)
	return 0, p.err
}

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) CleanupExpired(context.Context) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestRetentionJobRunsUntilStopped(t *testing.T) {
	purger := &countingPurger{err: errors.New("db down")}
	cleaner := &countingCleaner{}
	job := NewRetentionJob(purger, cleaner, 10*time.Millisecond, logger.Discard())

	job.Start()
	job.Start()

	require.Eventually(t, func() bool { return purger.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	job.Stop()
	job.Stop()

	calls := purger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, purger.calls.Load(), "no sweeps after Stop")
	assert.Equal(t, calls, cleaner.calls.Load(), "cleanup runs even when the purge fails")
}

func TestRetentionJobAppliesSettings(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	log := logger.Discard()
	messaging := services.NewMessagingService(store, nil, log, "admin@portfolio.local")
	sessions := services.NewSessionManager(store, time.Hour, log)

	conv, _, err := messaging.SubmitMessage(ctx, services.SubmitMessageInput{
		SenderName:  "Bob",
		SenderEmail: "bob@x.com",
		Content:     "old news",
	})
	require.NoError(t, err)

	job := NewRetentionJob(messaging, sessions, time.Hour, log)
	job.now = func() time.Time { return time.Now().AddDate(0, 0, 45) }
	job.RunOnce()

	_, err = store.GetConversation(ctx, conv.ID)
	assert.Error(t, err)
}
