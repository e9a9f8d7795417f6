package config

import "github.com/kelseyhightower/envconfig"

// Config holds tool configuration loaded from MYSHIFT_* environment
// variables. Loaded once at startup and treated as read-only.
type Config struct {
	Token      string `envconfig:"TOKEN" required:"true"`
	ScheduleID string `envconfig:"SCHEDULE_ID"`                  // default schedule; commands may override
	MyUser     string `envconfig:"MY_USER"`                      // user id or email used when no flag is given
	Timezone   string `envconfig:"TIMEZONE" default:"Local"`     // IANA name for display conversion
	APIURL     string `envconfig:"API_URL" default:"https://api.pagerduty.com"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"warn"`     // debug|info|warn|error
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("myshift", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
