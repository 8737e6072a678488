package common

type ErrorCode string
type ErrorMessage string

const (
	ErrCodeConfigLoadFailed          ErrorCode = "CONFIG_LOAD_FAILED"
	ErrCodeConfigInvalid             ErrorCode = "CONFIG_INVALID"
	ErrCodeGRPCConnectionFailed      ErrorCode = "GRPC_CONNECTION_FAILED"
	ErrCodeGRPCServeFailed           ErrorCode = "GRPC_SERVE_FAILED"
	ErrCodeGRPCConnectionCloseFailed ErrorCode = "GRPC_CONNECTION_CLOSE_FAILED"
	ErrCodeHTTPServeFailed           ErrorCode = "HTTP_SERVE_FAILED"
	ErrCodeWebsocketUpgradeFailed    ErrorCode = "WEBSOCKET_UPGRADE_FAILED"
	ErrCodeWebsocketWriteFailed      ErrorCode = "WEBSOCKET_WRITE_FAILED"
	ErrCodeInvalidPair               ErrorCode = "INVALID_PAIR"
	ErrCodeUnknownToken              ErrorCode = "UNKNOWN_TOKEN"
	ErrCodeInvalidAmount             ErrorCode = "INVALID_AMOUNT"
	ErrCodeChannelFull               ErrorCode = "CHANNEL_FULL"
	ErrCodeStreamClosed              ErrorCode = "STREAM_CLOSED"
	ErrCodeSchedulerFailed           ErrorCode = "SCHEDULER_FAILED"
)

const (
	ErrMsgConfigLoadFailed          ErrorMessage = "Failed to load configuration"
	ErrMsgConfigInvalid             ErrorMessage = "Configuration is invalid"
	ErrMsgGRPCConnectionFailed      ErrorMessage = "Failed to connect to gRPC server"
	ErrMsgGRPCServeFailed           ErrorMessage = "Failed to serve gRPC"
	ErrMsgGRPCConnectionCloseFailed ErrorMessage = "failed to close gRPC connection"
	ErrMsgHTTPServeFailed           ErrorMessage = "Failed to serve HTTP"
	ErrMsgWebsocketUpgradeFailed    ErrorMessage = "Failed to upgrade websocket connection"
	ErrMsgWebsocketWriteFailed      ErrorMessage = "Failed to write to websocket"
	ErrMsgInvalidPair               ErrorMessage = "Invalid trading pair"
	ErrMsgUnknownToken              ErrorMessage = "Unknown token"
	ErrMsgInvalidAmount             ErrorMessage = "Amount must be positive"
	ErrMsgChannelFull               ErrorMessage = "Channel is full, message dropped"
	ErrMsgStreamClosed              ErrorMessage = "Stream closed by server"
	ErrMsgSchedulerFailed           ErrorMessage = "Failed to register scheduled job"
)

func (e ErrorCode) String() string {
	return string(e)
}

func (m ErrorMessage) String() string {
	return string(m)
}
