package bot

import (
	"errors"
	"strings"
	"sync"

	"signal-desk/internal/session"

	"github.com/charmbracelet/log"
	tele "gopkg.in/telebot.v3"
)

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Observable is the part of *session.Session the notifier subscribes to.
type Observable interface {
	ObserveResets(fn func(session.Snapshot)) func()
}

// ResetNotifier tells subscribed chats when their quota window restarts.
type ResetNotifier struct {
	sender messageSender

	mu          sync.RWMutex
	subscribers map[int64]func()
}

func NewResetNotifier(sender messageSender) *ResetNotifier {
	return &ResetNotifier{
		sender:      sender,
		subscribers: make(map[int64]func()),
	}
}

func (n *ResetNotifier) Subscribe(chatID int64, sess Observable) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.subscribers[chatID]; exists {
		return false
	}
	n.subscribers[chatID] = sess.ObserveResets(n.watch(chatID))
	return true
}

func (n *ResetNotifier) Unsubscribe(chatID int64) bool {
	n.mu.Lock()
	stop, exists := n.subscribers[chatID]
	delete(n.subscribers, chatID)
	n.mu.Unlock()

	if !exists {
		return false
	}
	stop()
	return true
}

func (n *ResetNotifier) IsSubscribed(chatID int64) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	_, exists := n.subscribers[chatID]
	return exists
}

func (n *ResetNotifier) SubscriberCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// watch returns an observer for the 12h window resets of one chat. Upgrades
// and manual quota resets never reach it.
func (n *ResetNotifier) watch(chatID int64) func(session.Snapshot) {
	return func(snap session.Snapshot) {
		if snap.Unlimited {
			return
		}
		msg := "Your signal quota has been reset. " + formatStatus(snap)
		if _, err := n.sender.Send(&tele.Chat{ID: chatID}, msg); err != nil {
			log.Warn("reset alert failed", "chat", chatID, "err", err)
		}
	}
}

func parseAlertMode(args []string) (string, error) {
	if len(args) == 0 {
		return "status", nil
	}
	switch mode := strings.ToLower(strings.TrimSpace(args[0])); mode {
	case "on", "off", "status":
		return mode, nil
	default:
		return "", errors.New("invalid mode")
	}
}
