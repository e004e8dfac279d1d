package cfg

import "time"

type Cfg struct {
	// Storage configuration
	DBPath       string
	SettingsFile string

	// Application configuration
	Port             string
	BaseUrl          string
	WorkerCount      int
	APIAccessKey     string
	SessionCacheSize int
	RetentionDays    int

	// Batch scheduling
	SliceSize         int
	SliceBudget       time.Duration
	MutationThreshold int
	IdleTimeout       time.Duration
	IdleWindow        time.Duration

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
