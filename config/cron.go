package config

// CronJob pairs a cron schedule with the function to run.
type CronJob struct {
	Schedule string
	Job      func(...string)
}
