package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCallbackWithoutMessageIsAcknowledged covers presses on messages past
// Telegram's callback window: the query carries no message, so there is no
// chat to serve, but the callback must still be answered.
func TestCallbackWithoutMessageIsAcknowledged(t *testing.T) {
	controller, transport, store := newTestController(&fakeSource{})
	b := &Bot{controller: controller, logger: &fakeLogger{}}

	b.handleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb-stale", Data: CallbackNext},
	})

	require.Len(t, transport.acks, 1)
	assert.Equal(t, "cb-stale", transport.acks[0].callbackID)
	assert.Empty(t, transport.texts)
	assert.Empty(t, transport.photos)
	assert.Equal(t, 0, store.Len())
}
