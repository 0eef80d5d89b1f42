package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"catalog.GO/config"
	"catalog.GO/cron/jobs"
)

// BuiltinJobs returns the built-in job table. Schedules are read from env
// here rather than at package init so .env overrides apply.
func BuiltinJobs() map[string]config.CronJob {
	return map[string]config.CronJob{
		"catalogexport": {Schedule: config.GetEnv("EXPORT_CRON_SCHEDULE", "0 * * * *"), Job: jobs.CatalogExportJob},
		// Add more jobs here
	}
}

// StartCron schedules the built-in jobs plus the jobs registered through
// Register, then starts the scheduler.
func StartCron() *cron.Cron {
	c := cron.New()
	for name, cronJob := range BuiltinJobs() {
		jobFunc := cronJob.Job
		_, err := c.AddFunc(cronJob.Schedule, func() { jobFunc() })
		if err != nil {
			log.Fatalf("Failed to register job %s: %v", name, err)
		}
	}
	for name, j := range Jobs() {
		run := j.Run
		_, err := c.AddFunc(j.Schedule, func() { run() })
		if err != nil {
			log.Fatalf("Failed to register job %s: %v", name, err)
		}
	}
	c.Start()
	return c
}
