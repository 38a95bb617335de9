package bot

import (
	"context"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*tgbot.SendMessageParams
}

func (s *recordingSender) SendMessage(ctx context.Context, p *tgbot.SendMessageParams) (*models.Message, error) {
	s.sent = append(s.sent, p)
	return &models.Message{}, nil
}

func TestToInbound_OwnContactOnly(t *testing.T) {
	own := &models.Update{Message: &models.Message{
		Chat:    models.Chat{ID: 10},
		From:    &models.User{ID: 3},
		Contact: &models.Contact{PhoneNumber: "79991234567", UserID: 3},
	}}
	in, ok := toInbound(own)
	require.True(t, ok)
	assert.Equal(t, int64(10), in.ChatID)
	assert.Equal(t, "79991234567", in.ContactPhone)

	forwarded := &models.Update{Message: &models.Message{
		Chat:    models.Chat{ID: 10},
		From:    &models.User{ID: 3},
		Contact: &models.Contact{PhoneNumber: "79990000000", UserID: 4},
	}}
	in, ok = toInbound(forwarded)
	require.True(t, ok)
	assert.Empty(t, in.ContactPhone)

	_, ok = toInbound(&models.Update{})
	assert.False(t, ok)
}

func TestReplyMarkup(t *testing.T) {
	contact, ok := replyMarkup(Reply{RequestContact: true}).(*models.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, contact.Keyboard[0][0].RequestContact)

	options, ok := replyMarkup(Reply{Keyboard: []string{"Кошка", "Собака"}}).(*models.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, options.Keyboard, 2)
	assert.Equal(t, "Собака", options.Keyboard[1][0].Text)

	_, ok = replyMarkup(Reply{RemoveKeyboard: true}).(*models.ReplyKeyboardRemove)
	assert.True(t, ok)

	assert.Nil(t, replyMarkup(Reply{Text: "hi"}))
}

func TestDispatcher_RepliesThroughSender(t *testing.T) {
	d := NewDispatcher(newTestMachine(newFakeAPI(), newTestStore()), nil)
	s := &recordingSender{}

	d.handle(context.Background(), s, &models.Update{Message: &models.Message{
		Chat: models.Chat{ID: chat},
		Text: "/start",
	}})

	require.Len(t, s.sent, 1)
	assert.Equal(t, chat, s.sent[0].ChatID)
	assert.Equal(t, msgWelcome, s.sent[0].Text)
}

func TestDispatcher_StoreFailureSendsApology(t *testing.T) {
	store := newTestStore()
	store.saveErr = assert.AnError
	d := NewDispatcher(newTestMachine(newFakeAPI(), store), nil)
	s := &recordingSender{}

	d.handle(context.Background(), s, &models.Update{Message: &models.Message{
		Chat: models.Chat{ID: chat},
		Text: "/start",
	}})

	require.Len(t, s.sent, 1)
	assert.Equal(t, msgServiceUnavailable, s.sent[0].Text)
}
