package config

const (
	defaultLogDir             = "~/.local/share/uploadnotify/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 14
	defaultNamespace          = "uploadnotify"
	defaultChannelID          = "uploads"
	defaultChannelName        = "Uploads"
	defaultChannelImportance  = "low"
	defaultSound              = "default"
	defaultBaseNotificationID = 1234
	defaultRequestTimeout     = 10
	defaultNtfyRateLimit      = 1.0
	defaultNtfyBurst          = 5
)

// Default returns a Config populated with repository defaults. Channels stay
// empty so TOML array tables do not append to them; normalize registers the
// default channel when the file declares none.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Platform: Platform{
			SupportsNotificationChannels: true,
			OwnsSoundViaChannel:          true,
			DefaultSound:                 defaultSound,
			ExecuteInForeground:          true,
		},
		Notifications: Notifications{
			Namespace:          defaultNamespace,
			ChannelID:          defaultChannelID,
			BaseNotificationID: defaultBaseNotificationID,
			RequestTimeout:     defaultRequestTimeout,
			NtfyRateLimit:      defaultNtfyRateLimit,
			NtfyBurst:          defaultNtfyBurst,
			Progress: Status{
				Title:     "{filename}",
				Message:   "Uploading at {upload_rate} ({progress})",
				Icon:      "ic_upload",
				IconColor: "#2196F3",
			},
			Completed: Status{
				Title:         "{filename}",
				Message:       "Upload completed successfully in {elapsed_time}",
				Icon:          "ic_upload_done",
				IconColor:     "#4CAF50",
				ClearOnAction: true,
			},
			Error: Status{
				Title:         "{filename}",
				Message:       "Error during upload",
				Icon:          "ic_upload_error",
				IconColor:     "#F44336",
				ClearOnAction: true,
			},
			Cancelled: Status{
				Title:         "{filename}",
				Message:       "Upload cancelled",
				Icon:          "ic_upload_cancelled",
				IconColor:     "#FF9800",
				ClearOnAction: true,
			},
		},
	}
}
