package bot

import (
	"context"
	"fmt"
	"time"

	"signal-desk/internal/domain"

	"github.com/charmbracelet/log"
	tele "gopkg.in/telebot.v3"
)

const commandTimeout = 30 * time.Second

// StartTelegramBot registers the chat commands and starts long polling. It
// returns a nil bot when token is empty.
func StartTelegramBot(token string, sessions Sessions, analysisDelay time.Duration) (*tele.Bot, error) {
	if token == "" {
		log.Info("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil, nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	registerCommands(b, NewCommands(sessions, analysisDelay), sessions, NewResetNotifier(b))

	log.Info("telegram bot started", "user", b.Me.Username)
	go b.Start()
	return b, nil
}

type handlerRegistrar interface {
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
}

func registerCommands(b handlerRegistrar, cmds *Commands, sessions Sessions, alerts *ResetNotifier) {
	// inChat wraps a command so it runs against the chat's session.
	inChat := func(fn func(ctx context.Context, id string, args []string) string) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat() == nil {
				return c.Send("Unable to detect chat")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return c.Send(fn(ctx, SessionID(c.Chat().ID), c.Args()))
		}
	}

	b.Handle("/start", inChat(func(ctx context.Context, id string, _ []string) string { return cmds.Start(ctx, id) }))
	b.Handle("/assets", inChat(func(ctx context.Context, id string, _ []string) string { return cmds.Assets(ctx, id) }))
	b.Handle("/pick", inChat(cmds.Pick))
	b.Handle("/tf", inChat(cmds.Timeframe))
	b.Handle("/again", inChat(func(ctx context.Context, id string, _ []string) string { return cmds.Again(ctx, id) }))
	b.Handle("/win", inChat(func(ctx context.Context, id string, _ []string) string {
		return cmds.Feedback(ctx, id, domain.StatusConfirmed)
	}))
	b.Handle("/loss", inChat(func(ctx context.Context, id string, _ []string) string {
		return cmds.Feedback(ctx, id, domain.StatusFailed)
	}))
	b.Handle("/history", inChat(func(ctx context.Context, id string, _ []string) string { return cmds.History(ctx, id) }))
	b.Handle("/upgrade", inChat(cmds.Upgrade))
	b.Handle("/reset", inChat(func(ctx context.Context, id string, _ []string) string { return cmds.Reset(ctx, id) }))
	b.Handle("/status", inChat(func(ctx context.Context, id string, _ []string) string { return cmds.Status(ctx, id) }))

	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}
		mode, err := parseAlertMode(c.Args())
		if err != nil {
			return c.Send("Usage: /alerts on | /alerts off | /alerts status")
		}

		switch mode {
		case "on":
			sess, err := sessions.Get(context.Background(), SessionID(chat.ID))
			if err != nil {
				return c.Send(replyError(err))
			}
			if alerts.Subscribe(chat.ID, sess) {
				return c.Send("Reset alerts enabled for this chat.")
			}
			return c.Send("Reset alerts are already enabled for this chat.")
		case "off":
			if alerts.Unsubscribe(chat.ID) {
				return c.Send("Reset alerts disabled for this chat.")
			}
			return c.Send("Reset alerts are already disabled for this chat.")
		default:
			if alerts.IsSubscribed(chat.ID) {
				return c.Send("Alerts status: ON")
			}
			return c.Send("Alerts status: OFF")
		}
	})
}
