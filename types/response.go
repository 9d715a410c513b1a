package types

import "time"

// ApiResponse is the uniform JSON envelope for every endpoint. Error
// responses always carry Message and Status; successful responses add Data
// where relevant.
type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}

// LogEntry is an in-flight request log record handed to the async logger.
type LogEntry struct {
	Method          string
	URL             string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}
