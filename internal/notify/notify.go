// Package notify sends best-effort desktop notifications.
package notify

import (
	"context"
	"strconv"
	"time"

	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
)

// Binary is the notification client invoked by Send
var Binary = "notify-send"

const (
	appName     = "lmtt"
	sendTimeout = 2 * time.Second
)

// Send shows a notification expiring after timeoutMs milliseconds. A missing
// notify-send is not an error; any other failure is returned for logging.
func Send(ctx context.Context, title, body string, timeoutMs int) error {
	if !runner.Available(Binary) {
		logging.Debug("notification skipped, client not installed", "binary", Binary)
		return nil
	}

	args := []string{"--app-name", appName}
	if timeoutMs > 0 {
		args = append(args, "--expire-time", strconv.Itoa(timeoutMs))
	}
	args = append(args, title, body)

	if _, err := runner.Run(ctx, Binary, args, runner.Options{Timeout: sendTimeout}); err != nil {
		return err
	}
	logging.Debug("notification sent", "title", title)
	return nil
}
