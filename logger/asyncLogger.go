package logger

import (
	"context"
	"time"

	logmodel "github.com/notHeisenberg/Parcel-Ease-Server/models/log"
	"github.com/notHeisenberg/Parcel-Ease-Server/store/logstore"
	"github.com/notHeisenberg/Parcel-Ease-Server/types"
)

// AsyncLogger drains request log entries off a buffered channel and persists
// them into the logs collection so handlers never block on log writes.
type AsyncLogger struct {
	store   *logstore.Store
	channel chan types.LogEntry
}

func NewAsyncLogger(store *logstore.Store) *AsyncLogger {
	return &AsyncLogger{
		store:   store,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog runs the drain loop; start it with `go asyncLogger.ProcessLog()`.
func (l *AsyncLogger) ProcessLog() {
	Info("Starting asynchronous request logger...")

	for entry := range l.channel {
		dbLog := logmodel.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			CreatedAt:       entry.CreatedAt,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := l.store.Insert(ctx, dbLog); err != nil {
			Error("Failed to insert request log entry", err)
		}
		cancel()
	}
}

// Log pushes a log entry into the channel. Drops the entry if the buffer is
// full rather than stalling the request path.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case l.channel <- entry:
	default:
		Warning("Request log buffer full, dropping entry")
	}
}
