// internal/logger/config.go
package logger

type Config struct {
	Debug      bool
	LogFile    string // empty disables the rotated JSON file sink
	MaxSize    int    // megabytes
	MaxAge     int    // days
	MaxBackups int    // rotated files to keep
	Compress   bool   // compress rotated files
}

// DefaultConfig returns the logging configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Debug:      false,
		LogFile:    "",
		MaxSize:    100,
		MaxAge:     7,
		MaxBackups: 3,
		Compress:   true,
	}
}
