package config

import (
	"fmt"
	"time"
)

// ParseClock parses an "HH:MM" wall-clock time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q, want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return loadLocation(c.Timezone)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
