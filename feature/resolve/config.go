package resolve

import "strings"

// Config holds the defaults used when callers supply no patterns.
type Config struct {
	// Patterns is a comma separated list of default patterns.
	Patterns string `mapstructure:"patterns" default:""`
	// Concurrency bounds the pattern sets resolved at once by batch requests.
	Concurrency int `mapstructure:"concurrency" default:"4"`
}

// PatternList returns the configured patterns with blanks removed.
func (c Config) PatternList() []string {
	patterns := []string{}
	for _, p := range strings.Split(c.Patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
