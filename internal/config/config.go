// Package config defines the application configuration and its loading
// rules. Values come from environment variables (prefix LEXMEM_) with an
// optional config file underneath; environment variables win.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	SRS    SRSConfig    `mapstructure:"srs"    validate:"required"`
	Quiz   QuizConfig   `mapstructure:"quiz"   validate:"required"`
}

// ServerConfig contains the reference collaborator server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// SRSConfig tunes the scheduling engine constants.
type SRSConfig struct {
	MinEaseFactor      float64 `mapstructure:"min_ease_factor"      validate:"required,gt=1"`
	FirstPassInterval  int     `mapstructure:"first_pass_interval"  validate:"required,gt=0"`
	SecondPassInterval int     `mapstructure:"second_pass_interval" validate:"required,gt=0"`
	LapseInterval      int     `mapstructure:"lapse_interval"       validate:"required,gt=0"`
	MaxIntervalDays    int     `mapstructure:"max_interval_days"    validate:"gte=0"`
}

// QuizConfig tunes quiz generation defaults.
type QuizConfig struct {
	OptionsPerQuestion    int `mapstructure:"options_per_question"     validate:"required,gte=2,lte=6"`
	MaxPointsPerQuestion  int `mapstructure:"max_points_per_question"  validate:"required,gt=0"`
	SpeedRoundTimeSeconds int `mapstructure:"speed_round_time_seconds" validate:"required,gt=0"`
	SessionTTLMinutes     int `mapstructure:"session_ttl_minutes"      validate:"required,gt=0"`
}
