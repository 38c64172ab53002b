package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fooddelivery/internal/adapters/out/redispush"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const streamKeepAlive = 15 * time.Second

// NotificationSubscriber follows the real-time channel of one user.
type NotificationSubscriber interface {
	Subscribe(ctx context.Context, userID kernel.UUID) (<-chan redispush.Envelope, func() error, error)
}

// StreamNotifications handles GET /api/v1/notifications/stream as server-sent events.
// The stream ends when the client disconnects.
func (s *Server) StreamNotifications(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if s.h.Notifications == nil {
		return writeMessage(ctx, http.StatusServiceUnavailable, "Notification stream is not configured")
	}

	reqCtx := ctx.Request().Context()
	envelopes, closeSub, err := s.h.Notifications.Subscribe(reqCtx, actor.ID())
	if err != nil {
		return writeError(ctx, err)
	}
	defer func() { _ = closeSub() }()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case env, ok := <-envelopes:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", env.Event, env.Payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
