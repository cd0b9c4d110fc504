package mssql

import (
	"database/sql"
	"strings"
	"time"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
)

type resourceStatsRow struct {
	endTime          time.Time
	avgCPUPercent    sql.NullFloat64
	maxWorkerPercent sql.NullFloat64
	serviceObjective sql.NullString
}

func (r *resourceStatsRow) dest() []any {
	return []any{&r.endTime, &r.avgCPUPercent, &r.maxWorkerPercent, &r.serviceObjective}
}

// toDomainSample reports false for rows missing either utilization value.
func toDomainSample(r *resourceStatsRow) (scaling.Sample, bool) {
	if !r.avgCPUPercent.Valid || !r.maxWorkerPercent.Valid {
		return scaling.Sample{}, false
	}

	return scaling.Sample{
		Timestamp:     r.endTime.UTC(),
		TierLabel:     strings.TrimSpace(r.serviceObjective.String),
		CPUPercent:    r.avgCPUPercent.Float64,
		WorkerPercent: r.maxWorkerPercent.Float64,
	}, true
}

// quoteName brackets an identifier for statements that cannot take parameters.
func quoteName(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
