// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EmployeeDataPath points at the employee directory export (JSON).
	EmployeeDataPath string `koanf:"employee_data_path"`

	// SeniorLevel is the hierarchy level at which a manager counts as
	// senior for escalation.
	SeniorLevel int `koanf:"senior_level"`

	// SeniorReviewLimit is the evaluation count at which a senior
	// chain stops getting further passes.
	SeniorReviewLimit int `koanf:"senior_review_limit"`

	// SuggestionMinLevel and SuggestionMaxLevel bound the committee
	// nominee band.
	SuggestionMinLevel int `koanf:"suggestion_min_level"`
	SuggestionMaxLevel int `koanf:"suggestion_max_level"`

	// AuditWorkers sets the number of workers draining the audit queue.
	AuditWorkers int `koanf:"audit_workers"`

	// AuditQueueCapacity bounds the in-memory audit queue.
	AuditQueueCapacity int `koanf:"audit_queue_capacity"`

	// DemoSeed enables committee and work-item seeding on startup.
	DemoSeed bool `koanf:"demo_seed"`

	// RandomSeed fixes the seeding random source when non-zero.
	RandomSeed int64 `koanf:"random_seed"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":3000",
		EmployeeDataPath:   "data/employees.json",
		SeniorLevel:        10,
		SeniorReviewLimit:  2,
		SuggestionMinLevel: 8,
		SuggestionMaxLevel: 11,
		AuditWorkers:       2,
		AuditQueueCapacity: 4096,
		DemoSeed:           true,
		RandomSeed:         0,
	}
}
