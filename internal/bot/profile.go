package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/bot-kit/registration-service/internal/domain"
	"github.com/bot-kit/registration-service/internal/events"
	"github.com/bot-kit/registration-service/internal/fsm"
	"github.com/bot-kit/registration-service/internal/repository"
	"github.com/bot-kit/registration-service/internal/texts"
)

const stateAwaitingName fsm.State = "awaiting_name"

// Telegram caps first/last names well above this; the store does not.
const maxNameLen = 30

// Me replies with the sender's stored profile.
func (h *Handler) Me(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	sess := SessionFrom(c)
	user, err := h.users.GetByTelegramID(sess.Context(), sess, sender.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return c.Reply(TextsFrom(c).Get("not_registered"))
	}
	return c.Reply(profileText(user))
}

func profileText(user *domain.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", user.FullName())
	if user.Username != nil && *user.Username != "" {
		fmt.Fprintf(&b, "@%s\n", *user.Username)
	}
	fmt.Fprintf(&b, "registered %s", user.CreatedAt.Format("2 Jan 2006"))
	return b.String()
}

// SetName starts the rename flow: the next text message from this chat is
// taken as the new name.
func (h *Handler) SetName(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	sess := SessionFrom(c)
	bundle := TextsFrom(c)
	ctx := sess.Context()

	user, err := h.users.GetByTelegramID(ctx, sess, sender.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return c.Reply(bundle.Get("not_registered"))
	}

	if err := h.states.Set(ctx, chatID(c), stateAwaitingName); err != nil {
		return err
	}
	return c.Reply(bundle.Get("ask_name"))
}

// Text resolves in-flight conversation state. Messages outside a flow are
// ignored.
func (h *Handler) Text(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	sess := SessionFrom(c)
	bundle := TextsFrom(c)
	ctx := sess.Context()

	state, err := h.states.Get(ctx, chatID(c))
	if err != nil {
		return err
	}
	if state != stateAwaitingName {
		return nil
	}

	text := strings.TrimSpace(c.Text())
	if text == "" {
		return c.Reply(bundle.Get("ask_name"))
	}

	reply, err := h.rename(ctx, sess, bundle, sender.ID, text)
	if err != nil {
		return err
	}
	if err := h.states.Clear(ctx, chatID(c)); err != nil {
		return err
	}
	return c.Reply(reply)
}

func (h *Handler) rename(ctx context.Context, s repository.Session, bundle *texts.Bundle, tgID int64, text string) (string, error) {
	first, last := splitName(text)

	payload := domain.UserUpdate{FirstName: domain.Some(first)}
	if last != "" {
		lastName := last
		payload.LastName = domain.Some(&lastName)
	}

	updated, err := h.users.UpdateByTelegramID(ctx, s, tgID, payload)
	if err != nil {
		return "", err
	}
	if updated == nil {
		return bundle.Get("not_registered"), nil
	}

	if h.dispatcher != nil {
		_ = h.dispatcher.Publish(ctx, events.Event{
			Type:       events.EventUserRenamed,
			TelegramID: tgID,
			Timestamp:  time.Now().UTC(),
			Payload: events.UserRenamedPayload{
				UserID:    updated.ID,
				FirstName: updated.FirstName,
				LastName:  updated.LastName,
			},
		})
	}

	return bundle.Render("name_updated", map[string]string{"fullname": updated.FullName()}), nil
}

func splitName(text string) (first, last string) {
	parts := strings.Fields(text)
	first = truncateName(parts[0])
	if len(parts) > 1 {
		last = truncateName(strings.Join(parts[1:], " "))
	}
	return first, last
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > maxNameLen {
		return string(runes[:maxNameLen])
	}
	return name
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return c.Sender().ID
}
