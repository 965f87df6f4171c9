package utils

import (
	"fmt"
	"time"
)

// ParseDurationString parses config durations like "2s" or "10m". Negative values are rejected.
func ParseDurationString(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid time duration '%s' : %s", value, err.Error())
	}
	if d < 0 {
		return time.Duration(0), fmt.Errorf("negative time duration '%s'", value)
	}
	return d, nil
}
