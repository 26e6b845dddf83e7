package signal

import (
	"errors"

	"signal-desk/internal/domain"
)

var (
	ErrSignalNotFound = errors.New("signal not found")
	ErrInvalidStatus  = errors.New("feedback status must be CONFIRMED or FAILED")
	ErrFeedbackClosed = errors.New("signal already has feedback")
)

// History is the ordered, append-only record of generated signals, newest
// first. It is not safe for concurrent use.
type History struct {
	items []domain.Signal
}

func NewHistory(items []domain.Signal) *History {
	return &History{items: append([]domain.Signal(nil), items...)}
}

func (h *History) Prepend(s domain.Signal) {
	h.items = append([]domain.Signal{s}, h.items...)
}

func (h *History) Len() int { return len(h.items) }

// Items returns a copy of the history, newest first.
func (h *History) Items() []domain.Signal {
	return append([]domain.Signal(nil), h.items...)
}

func (h *History) Head() (domain.Signal, bool) {
	if len(h.items) == 0 {
		return domain.Signal{}, false
	}
	return h.items[0], true
}

func (h *History) Find(id string) (domain.Signal, bool) {
	for _, s := range h.items {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Signal{}, false
}

// ApplyFeedback moves a pending signal to a terminal status and returns the
// updated record. Terminal signals are never rewritten.
func (h *History) ApplyFeedback(id string, status domain.SignalStatus) (domain.Signal, error) {
	if !status.IsTerminal() {
		return domain.Signal{}, ErrInvalidStatus
	}
	for i := range h.items {
		if h.items[i].ID != id {
			continue
		}
		if h.items[i].Status.IsTerminal() {
			return h.items[i], ErrFeedbackClosed
		}
		h.items[i].Status = status
		return h.items[i], nil
	}
	return domain.Signal{}, ErrSignalNotFound
}
