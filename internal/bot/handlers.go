package bot

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/bot-kit/registration-service/internal/domain"
	"github.com/bot-kit/registration-service/internal/events"
	"github.com/bot-kit/registration-service/internal/fsm"
	"github.com/bot-kit/registration-service/internal/repository"
	"github.com/bot-kit/registration-service/internal/texts"
)

// Handler carries the dependencies of the command handlers.
type Handler struct {
	users      repository.UserRepository
	states     *fsm.Storage
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewHandler creates the handler set.
func NewHandler(users repository.UserRepository, states *fsm.Storage, dispatcher events.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		users:      users,
		states:     states,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start registers the sender on first contact. Updates without a sender
// identity are ignored silently.
func (h *Handler) Start(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	sess := SessionFrom(c)
	reply, err := h.register(sess.Context(), sess, TextsFrom(c), sender)
	if err != nil {
		return err
	}
	return c.Reply(reply)
}

func (h *Handler) register(ctx context.Context, s repository.Session, bundle *texts.Bundle, sender *tele.User) (string, error) {
	existing, err := h.users.GetByTelegramID(ctx, s, sender.ID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return bundle.Get("already_registered"), nil
	}

	payload := domain.UserCreate{
		TelegramID: sender.ID,
		FirstName:  sender.FirstName,
	}
	if sender.LastName != "" {
		lastName := sender.LastName
		payload.LastName = &lastName
	}
	if sender.Username != "" {
		username := sender.Username
		payload.Username = &username
	}

	created, err := h.users.Create(ctx, s, payload)
	if err != nil {
		return "", err
	}

	if created != nil && h.dispatcher != nil {
		_ = h.dispatcher.Publish(ctx, events.Event{
			Type:       events.EventUserRegistered,
			TelegramID: sender.ID,
			Timestamp:  time.Now().UTC(),
			Payload: events.UserRegisteredPayload{
				UserID:    created.ID,
				FirstName: created.FirstName,
				LastName:  created.LastName,
				Username:  created.Username,
			},
		})
	}

	// The welcome text echoes the name from the inbound update, not the
	// persisted row.
	return bundle.Render("welcome", map[string]string{"fullname": senderFullName(sender)}), nil
}

func senderFullName(sender *tele.User) string {
	if sender.LastName == "" {
		return sender.FirstName
	}
	return sender.FirstName + " " + sender.LastName
}
