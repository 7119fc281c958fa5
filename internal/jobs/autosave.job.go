package jobs

import (
	"context"
	"time"

	logger "github.com/Bparsons0904/goLogger"
)

type Saver interface {
	Save(ctx context.Context) error
}

// AutosaveJob persists the current state on a fixed interval, on top of the
// save that follows every mutation.
type AutosaveJob struct {
	saver    Saver
	log      logger.Logger
	interval time.Duration
}

func NewAutosaveJob(saver Saver, interval time.Duration) *AutosaveJob {
	log := logger.New("autosaveJob")
	log.Info("Creating new autosave job", "interval", interval)

	return &AutosaveJob{
		saver:    saver,
		log:      log,
		interval: interval,
	}
}

func (j *AutosaveJob) Name() string {
	return "Autosave"
}

func (j *AutosaveJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if err := j.saver.Save(ctx); err != nil {
		return log.Err("autosave failed", err)
	}

	log.Debug("Autosave completed")
	return nil
}

func (j *AutosaveJob) Interval() time.Duration {
	return j.interval
}
