package controller

import (
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

// Settings configures a controller Service.
type Settings struct {
	// Database is the resource the Scaler mutates.
	Database string
	Catalog  *tier.Catalog
	Up       scaling.Policy
	Down     scaling.Policy
	// ScheduleUp and ScheduleDown are cron specs; seconds are optional.
	ScheduleUp   string
	ScheduleDown string
	ScheduleTZ   string
	// RunOnStart evaluates both directions once before waiting for the first tick.
	RunOnStart bool
}

// Result describes one evaluation cycle.
type Result struct {
	Direction scaling.Direction
	// Outcome is a scaling.Outcome name, OutcomeNoData or OutcomeFormatError.
	Outcome  string
	Snapshot scaling.Snapshot
	Current  tier.Tier
	Target   tier.Tier
	// Applied is true when the Scaler accepted a tier change.
	Applied bool
}

// Report is what Diagnostics receives for a cycle.
type Report struct {
	Database string
	Result
}
