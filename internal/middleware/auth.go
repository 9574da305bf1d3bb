package middleware

import (
	"context"
	"strings"

	"lifemin/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AuthorizedKey is the context key holding the sender's authorization flag
const AuthorizedKey = "authorized"

const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgPasswordPrompt = "Hi! This is lifemin. Please enter the password to continue:"
)

// AuthMiddleware registers the sender and gates everything behind the password.
// Unauthorized plain text still reaches the handlers so it can be checked as a password.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}
			ctx := context.Background()

			// Ensure user exists
			if err := authService.EnsureUserExists(ctx, sender.ID, displayName(sender)); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Int64("user_id", sender.ID), zap.Error(err))
				return c.Send(msgInternalError)
			}

			authorized, err := authService.IsAuthorized(ctx, sender.ID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Int64("user_id", sender.ID), zap.Error(err))
				return c.Send(msgInternalError)
			}
			c.Set(AuthorizedKey, authorized)

			if !authorized && !passThrough(c) {
				if c.Callback() != nil {
					_ = c.Respond()
				}
				return c.Send(msgPasswordPrompt)
			}

			return next(c)
		}
	}
}

// IsAuthorized reads the flag stored by AuthMiddleware
func IsAuthorized(c tele.Context) bool {
	authorized, _ := c.Get(AuthorizedKey).(bool)
	return authorized
}

// passThrough reports whether an unauthorized update may reach the handlers
func passThrough(c tele.Context) bool {
	if c.Callback() != nil {
		return false
	}
	text := strings.TrimSpace(c.Text())
	return text == "/start" || (text != "" && !strings.HasPrefix(text, "/"))
}

func displayName(u *tele.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
