package bot

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"vet-clinic-booking/internal/platform/logger"
)

// Sender es la parte de *tgbot.Bot que usa el dispatcher.
type Sender interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
}

// Dispatcher traduce updates de Telegram a la máquina de estados y envía la respuesta.
type Dispatcher struct {
	machine *Machine
	log     logger.Logger
}

func NewDispatcher(m *Machine, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{machine: m, log: log}
}

// HandleUpdate tiene la firma de tgbot.HandlerFunc; se registra con tgbot.WithDefaultHandler.
func (d *Dispatcher) HandleUpdate(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	d.handle(ctx, b, update)
}

func (d *Dispatcher) handle(ctx context.Context, s Sender, update *models.Update) {
	in, ok := toInbound(update)
	if !ok {
		return
	}

	reply, err := d.machine.Handle(ctx, in)
	if err != nil {
		d.log.Error("bot handle update", map[string]any{"chat_id": in.ChatID, "err": err})
		reply = Reply{Text: msgServiceUnavailable}
	}
	if reply.Text == "" {
		return
	}

	_, err = s.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      in.ChatID,
		Text:        reply.Text,
		ReplyMarkup: replyMarkup(reply),
	})
	if err != nil {
		d.log.Warn("bot send message", map[string]any{"chat_id": in.ChatID, "err": err})
	}
}

func toInbound(update *models.Update) (Inbound, bool) {
	if update == nil || update.Message == nil {
		return Inbound{}, false
	}
	msg := update.Message

	in := Inbound{ChatID: msg.Chat.ID, Text: msg.Text}
	if msg.Contact != nil {
		// solo aceptamos el contacto propio, no uno reenviado
		if msg.From == nil || msg.Contact.UserID == 0 || msg.Contact.UserID == msg.From.ID {
			in.ContactPhone = msg.Contact.PhoneNumber
		}
	}
	return in, true
}

func replyMarkup(r Reply) models.ReplyMarkup {
	switch {
	case r.RequestContact:
		return &models.ReplyKeyboardMarkup{
			Keyboard: [][]models.KeyboardButton{
				{{Text: msgShareContactButton, RequestContact: true}},
			},
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		}
	case len(r.Keyboard) > 0:
		rows := make([][]models.KeyboardButton, 0, len(r.Keyboard))
		for _, opt := range r.Keyboard {
			rows = append(rows, []models.KeyboardButton{{Text: opt}})
		}
		return &models.ReplyKeyboardMarkup{
			Keyboard:        rows,
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		}
	case r.RemoveKeyboard:
		return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	default:
		return nil
	}
}
