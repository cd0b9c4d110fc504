package config

import "time"

// Every key is read from the environment as HSAUTOSCALER_<KEY> and from the
// optional YAML file as <key>. Duration values take explicit units (e.g. 15s, 5m).
const envPrefix = "HSAUTOSCALER"

// Path to an optional YAML config file. Env values override the file.
const envKeyConfigFile = "HSAUTOSCALER_CONFIG_FILE"

// Log level: debug, info, warn, error.
const keyLogLevel = "log_level"

// Log format: json or text.
const keyLogFormat = "log_format"

// Port for health/readiness HTTP server.
const keyHTTPPort = "http_port"

// Port for Prometheus metrics (GET /metrics).
const keyMetricsPort = "metrics_port"

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	keyPingerInterval = "pinger_interval"
	minPingerInterval = time.Second
)

// Marker file that aborts startup when present; empty disables the check.
const keyTerminationFile = "termination_file"

// SQL Server connection string, URL (sqlserver://) or ADO form. Required.
const keySQLConnection = "sql_connection"

// Database to scale. Falls back to the database named in the connection string.
const keyDatabase = "database"

// Where usage samples come from: sql or prometheus.
const keySampleSource = "sample_source"

// Prometheus sample source settings, used when sample_source is prometheus.
const (
	keyPrometheusURL         = "prometheus_url"
	keyPrometheusCPUQuery    = "prometheus_cpu_query"
	keyPrometheusWorkerQuery = "prometheus_worker_query"
	keyPrometheusTierQuery   = "prometheus_tier_query"
	keyPrometheusStep        = "prometheus_step"
	minPrometheusStep        = time.Second
)

// Scaling bounds in vCores, inclusive.
const (
	keyVCoreMin = "vcore_min"
	keyVCoreMax = "vcore_max"
)

// Hysteresis band, percent in [0, 100]; low must be below high.
const (
	keyLowCPUPercent      = "low_cpu_percent"
	keyHighCPUPercent     = "high_cpu_percent"
	keyLowWorkersPercent  = "low_workers_percent"
	keyHighWorkersPercent = "high_workers_percent"
)

// Moving average window size per direction.
const (
	keyRequiredDataPointsUp   = "required_data_points_up"
	keyRequiredDataPointsDown = "required_data_points_down"
)

// Cron specs per direction; a leading seconds field is optional.
const (
	keyScheduleUp   = "schedule_up"
	keyScheduleDown = "schedule_down"
	keyScheduleTZ   = "schedule_tz"
	keyRunOnStart   = "run_on_start"
)

// Log decisions without changing the service objective.
const keyDryRun = "dry_run"

// Ladder override, e.g. "4:1,2,4,8;5:2,4,8,16". Empty uses the built-in ladders.
const keyTierLadders = "tier_ladders"

// Sample source names.
const (
	SampleSourceSQL        = "sql"
	SampleSourcePrometheus = "prometheus"
)
