package config

import "time"

// ScriptConfig configures Go snippet evaluation.
type ScriptConfig struct {
	AllowedPackages []string `yaml:"allowed_packages" env:"SCRIPT_PACKAGES" envSeparator:","`
	Timeout         string   `yaml:"timeout" env:"SCRIPT_TIMEOUT"`
}

// GetScriptTimeout returns the timeout applied both to evaluating a snippet
// and to each call of a compiled preprocess hook, 5s if unparsable.
func (c *Config) GetScriptTimeout() time.Duration {
	d, err := time.ParseDuration(c.Script.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
