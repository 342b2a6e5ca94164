// Package handlers implements the admin dialogue: the signal wizard, the
// result flow, the report commands, and the auxiliary admin menus.
package handlers

import (
	"strconv"

	telebot "gopkg.in/telebot.v3"

	apperrors "github.com/signal-desk/halskey/internal/errors"
	"github.com/signal-desk/halskey/internal/state"
)

// replacePrompt deletes the superseded bot prompt and sends the next one,
// recording the new message id on the conversation.
func replacePrompt(c telebot.Context, conv *state.Conversation, text string, opts ...interface{}) error {
	deletePrompt(c, conv)
	return sendPrompt(c, conv, text, opts...)
}

// deletePrompt removes the message the callback came from, falling back to
// the last recorded prompt. Deletion failures are ignored: the message may
// already be gone.
func deletePrompt(c telebot.Context, conv *state.Conversation) {
	if cb := c.Callback(); cb != nil && cb.Message != nil {
		_ = c.Bot().Delete(cb.Message)
		if conv.LastBotMessageID == cb.Message.ID {
			conv.LastBotMessageID = 0
		}
		return
	}

	if conv.LastBotMessageID != 0 && c.Chat() != nil {
		stored := telebot.StoredMessage{
			MessageID: strconv.Itoa(conv.LastBotMessageID),
			ChatID:    c.Chat().ID,
		}
		_ = c.Bot().Delete(stored)
		conv.LastBotMessageID = 0
	}
}

func sendPrompt(c telebot.Context, conv *state.Conversation, text string, opts ...interface{}) error {
	to := promptRecipient(c)
	if to == nil {
		return nil
	}

	sent, err := c.Bot().Send(to, text, opts...)
	if err != nil {
		return apperrors.NewTransportError(err)
	}

	conv.LastBotMessageID = sent.ID
	return nil
}

func promptRecipient(c telebot.Context) telebot.Recipient {
	if chat := c.Chat(); chat != nil {
		return chat
	}
	if sender := c.Sender(); sender != nil {
		return sender
	}
	return nil
}

// editPrompt rewrites the message the callback came from in place.
func editPrompt(c telebot.Context, text string, opts ...interface{}) error {
	cb := c.Callback()
	if cb == nil || cb.Message == nil {
		return nil
	}

	if _, err := c.Bot().Edit(cb.Message, text, opts...); err != nil {
		return apperrors.NewTransportError(err)
	}

	return nil
}
