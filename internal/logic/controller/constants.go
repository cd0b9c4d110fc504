package controller

import "time"

const (
	// Default cron specs: a fast scale-up check and an hourly scale-down check.
	DefaultScheduleUp   = "*/15 * * * * *"
	DefaultScheduleDown = "0 * * * *"

	// Cycle outcomes that are not engine decisions.
	OutcomeNoData      = "no_data"
	OutcomeFormatError = "format_error"

	// maxScheduleLag is how far past its planned fire time a loop may be before Ping fails.
	maxScheduleLag = 2 * time.Minute

	// defaultCycleTimeout bounds one scheduled evaluation; it stays below maxScheduleLag.
	defaultCycleTimeout = time.Minute
)
