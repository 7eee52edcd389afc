package config

import (
	"os"
	"strings"
)

// normalize expands paths, applies environment fallbacks, and trims key
// prefixes. It runs once per Load so downstream code sees final values.
func (c *Config) normalize() error {
	if bucket := os.Getenv("CONTENT_BUCKET"); bucket != "" && c.Storage.Bucket == "" {
		c.Storage.Bucket = bucket
	}
	if table := os.Getenv("CONTENT_TABLE"); table != "" {
		c.Registry.Table = table
	}
	if region := firstNonEmpty(os.Getenv("AWS_REGION"), os.Getenv("AWS_DEFAULT_REGION")); region != "" {
		c.AWS.Region = region
	}

	c.Storage.Bucket = strings.TrimSpace(c.Storage.Bucket)
	c.Storage.KeyPrefix = strings.Trim(strings.TrimSpace(c.Storage.KeyPrefix), "/")
	c.Registry.Table = strings.TrimSpace(c.Registry.Table)
	c.AWS.Region = strings.TrimSpace(c.AWS.Region)
	c.AWS.Profile = strings.TrimSpace(c.AWS.Profile)

	for _, field := range []*string{
		&c.Content.RootDir,
		&c.Paths.StateDir,
		&c.Paths.LogDir,
		&c.Journal.Path,
	} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := ExpandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
