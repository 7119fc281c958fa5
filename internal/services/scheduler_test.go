package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	interval time.Duration
	runs     atomic.Int32
	err      error
}

func (j *countingJob) Name() string            { return j.name }
func (j *countingJob) Interval() time.Duration { return j.interval }

func (j *countingJob) Execute(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestSchedulerService_AddJob(t *testing.T) {
	scheduler := NewSchedulerService()

	err := scheduler.AddJob(&countingJob{name: "broken", interval: 0})
	assert.Error(t, err)
	assert.Equal(t, 0, scheduler.GetJobCount())

	require.NoError(t, scheduler.AddJob(&countingJob{name: "autosave", interval: time.Minute}))
	assert.Equal(t, 1, scheduler.GetJobCount())
}

func TestSchedulerService_StartStop(t *testing.T) {
	ctx := context.Background()
	scheduler := NewSchedulerService()

	require.NoError(t, scheduler.Start(ctx))
	assert.False(t, scheduler.IsRunning(), "nothing to run without jobs")

	require.NoError(t, scheduler.AddJob(&countingJob{name: "autosave", interval: time.Hour}))
	require.NoError(t, scheduler.Start(ctx))
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop(ctx))
	assert.False(t, scheduler.IsRunning())
}

func TestSchedulerService_RunsOnInterval(t *testing.T) {
	ctx := context.Background()
	scheduler := NewSchedulerService()
	job := &countingJob{name: "autosave", interval: 50 * time.Millisecond}

	require.NoError(t, scheduler.AddJob(job))
	require.NoError(t, scheduler.Start(ctx))
	defer func() { _ = scheduler.Stop(ctx) }()

	assert.Eventually(t, func() bool { return job.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerService_TriggerJobByName(t *testing.T) {
	ctx := context.Background()
	scheduler := NewSchedulerService()
	failing := &countingJob{name: "failing", interval: time.Hour, err: errors.New("disk full")}
	autosave := &countingJob{name: "autosave", interval: time.Hour}

	require.NoError(t, scheduler.AddJob(failing))
	require.NoError(t, scheduler.AddJob(autosave))

	require.NoError(t, scheduler.TriggerJobByName(ctx, "autosave"))
	assert.Equal(t, int32(1), autosave.runs.Load())

	assert.ErrorContains(t, scheduler.TriggerJobByName(ctx, "failing"), "disk full")

	err := scheduler.TriggerJobByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}
