package jobs

import (
	"time"

	"gameshelf/config"
	"gameshelf/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	saver Saver,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	interval := time.Duration(config.AutosaveIntervalSeconds) * time.Second
	if err := schedulerService.AddJob(NewAutosaveJob(saver, interval)); err != nil {
		return log.Err("failed to register autosave job", err)
	}
	log.Info("Registered autosave job", "interval", interval)

	return nil
}
