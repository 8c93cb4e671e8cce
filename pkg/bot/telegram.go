package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramTransport implements Transport over the Telegram Bot API
type TelegramTransport struct {
	api *tgbotapi.BotAPI
}

// NewTelegramTransport creates a transport bound to a bot API client
func NewTelegramTransport(api *tgbotapi.BotAPI) *TelegramTransport {
	return &TelegramTransport{api: api}
}

// SendText sends a plain message, optionally with a navigation keyboard
func (t *TelegramTransport) SendText(chatID int64, text string, keyboard Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	switch keyboard {
	case KeyboardNextSwitch:
		msg.ReplyMarkup = nextSwitchKeyboard()
	case KeyboardSwitchOnly:
		msg.ReplyMarkup = switchOnlyKeyboard()
	}
	_, err := t.api.Send(msg)
	return err
}

// SendPhoto uploads raw image bytes to the chat
func (t *TelegramTransport) SendPhoto(chatID int64, data []byte) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "image.jpg",
		Bytes: data,
	})
	_, err := t.api.Send(photo)
	return err
}

// AnswerCallback acknowledges a callback query, with an optional toast notice
func (t *TelegramTransport) AnswerCallback(callbackID string, notice string) error {
	callback := tgbotapi.NewCallback(callbackID, notice)
	_, err := t.api.Request(callback)
	return err
}

// nextSwitchKeyboard offers both page advance and account switch
func nextSwitchKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Next", CallbackNext),
			tgbotapi.NewInlineKeyboardButtonData("Switch account", CallbackSwitch),
		),
	)
}

// switchOnlyKeyboard offers account switch once a session is exhausted
func switchOnlyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Switch account", CallbackSwitch),
		),
	)
}
