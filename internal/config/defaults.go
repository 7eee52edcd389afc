package config

const (
	defaultRootDir   = "content/units"
	defaultKeyPrefix = "activities"
	defaultTable     = "ContentTable"
	defaultRegion    = "us-west-1"
	defaultProfile   = "default"
	defaultStateDir  = "~/.local/share/lantern"
	defaultLogDir    = "~/.local/share/lantern/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. Bucket has no
// default; it must come from the config file or CONTENT_BUCKET.
func Default() Config {
	return Config{
		Content: Content{
			RootDir: defaultRootDir,
		},
		Storage: Storage{
			KeyPrefix: defaultKeyPrefix,
		},
		Registry: Registry{
			Table: defaultTable,
		},
		AWS: AWS{
			Region:  defaultRegion,
			Profile: defaultProfile,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
	}
}
