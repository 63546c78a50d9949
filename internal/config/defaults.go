package config

const (
	defaultBaseURL         = "http://127.0.0.1:5000"
	defaultRequestTimeout  = 120
	defaultDownloadTimeout = 600
	defaultLogDir          = "~/.local/share/viralclip/logs"
	defaultExportDir       = "~/.local/share/viralclip/exports"
	defaultPlatform        = "YouTube Shorts"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultNotifyTimeout   = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Service: Service{
			BaseURL:         defaultBaseURL,
			RequestTimeout:  defaultRequestTimeout,
			DownloadTimeout: defaultDownloadTimeout,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Analysis: Analysis{
			Platform: defaultPlatform,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Analysis:       true,
			Export:         true,
			Errors:         true,
		},
		Clipboard: Clipboard{
			OSC52Fallback: true,
		},
	}
}
