package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration marks a missing or invalid required value. The CLI aborts
// before any store I/O when it sees this.
var ErrConfiguration = errors.New("configuration error")

// Validate checks that every value required for a publish run is present.
func (c *Config) Validate() error {
	var problems []string
	if c.Content.RootDir == "" {
		problems = append(problems, "content.root_dir is required")
	}
	if c.Storage.Bucket == "" {
		problems = append(problems, "storage.bucket is required (or set CONTENT_BUCKET)")
	}
	if c.Storage.KeyPrefix == "" {
		problems = append(problems, "storage.key_prefix is required")
	}
	if c.Registry.Table == "" {
		problems = append(problems, "registry.table is required (or set CONTENT_TABLE)")
	}
	if c.AWS.Region == "" {
		problems = append(problems, "aws.region is required (or set AWS_REGION)")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not console or json", c.Logging.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}
