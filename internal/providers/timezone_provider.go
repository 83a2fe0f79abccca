package providers

import (
	"fmt"
	"spd/internal/structures"
	"time"
)

// NewTimezoneProvider resolves the configured IANA zone once at startup.
// An unknown zone is a configuration error and fatal.
func NewTimezoneProvider(conf *structures.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(conf.Storage.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", conf.Storage.Timezone, err)
	}
	return loc, nil
}
