package server

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/golang/glog"
)

var renderCounter atomic.Int64

// nextRenderID returns a short identifier used to tag one render's log lines
func nextRenderID() string {
	return fmt.Sprintf("render-%d", renderCounter.Add(1))
}

// WebLogger implements core.Logger by tagging each message with its render ID
type WebLogger struct {
	renderID string
	output   func(message string)
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string) *WebLogger {
	return &WebLogger{
		renderID: renderID,
		output: func(message string) {
			glog.Info(message)
		},
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	wl.output(fmt.Sprintf("[%s] %s", wl.renderID, message))
}
