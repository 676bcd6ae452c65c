package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/bot-kit/registration-service/internal/observability"
	"github.com/bot-kit/registration-service/internal/persistence"
	"github.com/bot-kit/registration-service/internal/texts"
)

const (
	sessionKey = "session"
	textsKey   = "texts"
)

// SessionFactory opens one unit of work per inbound update.
type SessionFactory interface {
	Session(ctx context.Context) *persistence.Session
}

// SessionMiddleware guarantees exactly one database session per update:
// opened before the handler runs, injected through the invocation context,
// rolled back when the handler fails, and closed on every exit path. Handler
// errors propagate unchanged.
func SessionMiddleware(base context.Context, factory SessionFactory, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sess := factory.Session(base)
			c.Set(sessionKey, sess)

			defer func() {
				if err := sess.Close(base); err != nil {
					logger.Warn("session close", zap.Error(err))
				}
			}()

			if err := next(c); err != nil {
				if rbErr := sess.Rollback(base); rbErr != nil && !errors.Is(rbErr, persistence.ErrSessionClosed) {
					logger.Warn("session rollback", zap.Error(rbErr))
				}
				return err
			}
			return nil
		}
	}
}

// SessionFrom extracts the update's session from the invocation context.
func SessionFrom(c tele.Context) *persistence.Session {
	sess, _ := c.Get(sessionKey).(*persistence.Session)
	return sess
}

// TextsMiddleware injects the localized text bundle into each update.
func TextsMiddleware(bundle *texts.Bundle) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(textsKey, bundle)
			return next(c)
		}
	}
}

// TextsFrom extracts the text bundle from the invocation context.
func TextsFrom(c tele.Context) *texts.Bundle {
	bundle, _ := c.Get(textsKey).(*texts.Bundle)
	return bundle
}

// Observe logs each update and records counters. Errors are counted and
// returned unchanged so the transport's error boundary still sees them.
func Observe(logger *zap.Logger, metrics *observability.Metrics) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			started := time.Now()
			endpoint := endpointOf(c)
			metrics.RecordUpdate(endpoint)

			err := next(c)

			fields := []zap.Field{
				zap.String("endpoint", endpoint),
				zap.Duration("duration", time.Since(started)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("sender_id", sender.ID))
			}
			if err != nil {
				metrics.RecordError(endpoint)
				logger.Error("update failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("update handled", fields...)
			return nil
		}
	}
}

func endpointOf(c tele.Context) string {
	text := c.Text()
	if strings.HasPrefix(text, "/") {
		cmd := strings.Fields(text)[0]
		if at := strings.Index(cmd, "@"); at > 0 {
			cmd = cmd[:at]
		}
		return cmd
	}
	return "message"
}
