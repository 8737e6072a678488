package common

import "time"

const (
	DefaultConfigPath        = "./configs/config.yml"
	DefaultGRPCPort          = 50051
	DefaultHTTPPort          = 8080
	DefaultLogLevel          = "info"
	DefaultTickIntervalSec   = 5
	DefaultChannelBufferSize = 256
	DefaultStatsCron         = "@every 1m"
	DefaultTimezone          = "Local"

	ListenerChannelSize = 1024
	MaxGRPCMessageSize  = 1024 * 1024 * 10 // 10MB

	HourInterval = time.Hour
	DayInterval  = 24 * time.Hour
)
