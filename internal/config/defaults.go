package config

const (
	defaultWorkDir           = "~/.local/share/lskinbot/work"
	defaultLogDir            = "~/.local/share/lskinbot/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultRequestTimeout    = 30
	defaultPollTimeout       = 30
	defaultStaleAfterMinutes = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Telegram: Telegram{
			RequestTimeout: defaultRequestTimeout,
			PollTimeout:    defaultPollTimeout,
		},
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Workspace: Workspace{
			StaleAfterMinutes: defaultStaleAfterMinutes,
		},
	}
}
