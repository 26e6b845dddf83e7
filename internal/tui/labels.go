package tui

import (
	"errors"

	"signal-desk/internal/domain"
	"signal-desk/internal/session"
	"signal-desk/internal/signal"
	"signal-desk/internal/tier"
)

type label int

const (
	lblTitle label = iota
	lblStart
	lblChooseAsset
	lblChooseTimeframe
	lblAnalysing
	lblResult
	lblCalendar
	lblDirection
	lblProbability
	lblHistory
	lblNoHistory
	lblSignals
	lblUnlimited
	lblNextReset
	lblMarketClosed
	lblMarketOpen
	lblForex
	lblClosed
	lblOpen
	lblUpgradePrompt
	lblUpgraded
	lblQuotaReset
	lblQuotaExhausted
	lblInvalidSecret
	lblFeedbackClosed
	lblNotPermitted
	lblNotAllowed
	lblGoodbye
)

var labels = map[domain.Language]map[label]string{
	domain.LanguageEN: {
		lblTitle:           "Signal Desk",
		lblStart:           "Press enter to pick an asset",
		lblChooseAsset:     "Choose an asset",
		lblChooseTimeframe: "Choose a timeframe",
		lblAnalysing:       "Analysing market",
		lblResult:          "Signal",
		lblCalendar:        "Market week",
		lblDirection:       "Direction",
		lblProbability:     "Probability",
		lblHistory:         "History",
		lblNoHistory:       "No signals yet",
		lblSignals:         "Signals",
		lblUnlimited:       "unlimited",
		lblNextReset:       "Next reset",
		lblMarketClosed:    "Forex closed (Fri-Sun)",
		lblMarketOpen:      "Forex open",
		lblForex:           "Forex",
		lblClosed:          "closed",
		lblOpen:            "open",
		lblUpgradePrompt:   "Enter access code",
		lblUpgraded:        "Status upgraded",
		lblQuotaReset:      "Quota reset",
		lblQuotaExhausted:  "Signal limit reached, wait for the next reset",
		lblInvalidSecret:   "Invalid access code",
		lblFeedbackClosed:  "Result already recorded",
		lblNotPermitted:    "Not available for your status",
		lblNotAllowed:      "Not available here",
		lblGoodbye:         "Goodbye!",
	},
	domain.LanguageRU: {
		lblTitle:           "Signal Desk",
		lblStart:           "Нажмите enter, чтобы выбрать актив",
		lblChooseAsset:     "Выберите актив",
		lblChooseTimeframe: "Выберите таймфрейм",
		lblAnalysing:       "Анализ рынка",
		lblResult:          "Сигнал",
		lblCalendar:        "Неделя рынка",
		lblDirection:       "Направление",
		lblProbability:     "Вероятность",
		lblHistory:         "История",
		lblNoHistory:       "Сигналов пока нет",
		lblSignals:         "Сигналы",
		lblUnlimited:       "без лимита",
		lblNextReset:       "Сброс",
		lblMarketClosed:    "Форекс закрыт (пт-вс)",
		lblMarketOpen:      "Форекс открыт",
		lblForex:           "Форекс",
		lblClosed:          "закрыт",
		lblOpen:            "открыт",
		lblUpgradePrompt:   "Введите код доступа",
		lblUpgraded:        "Статус повышен",
		lblQuotaReset:      "Лимит сброшен",
		lblQuotaExhausted:  "Лимит сигналов исчерпан, дождитесь сброса",
		lblInvalidSecret:   "Неверный код доступа",
		lblFeedbackClosed:  "Результат уже записан",
		lblNotPermitted:    "Недоступно для вашего статуса",
		lblNotAllowed:      "Здесь недоступно",
		lblGoodbye:         "До встречи!",
	},
}

func text(lang domain.Language, l label) string {
	if m, ok := labels[lang]; ok {
		if s, ok := m[l]; ok {
			return s
		}
	}
	return labels[domain.LanguageEN][l]
}

// describeError maps a rejected event to a user-facing notice.
func describeError(lang domain.Language, err error) string {
	switch {
	case errors.Is(err, session.ErrMarketClosed):
		return text(lang, lblMarketClosed)
	case errors.Is(err, session.ErrQuotaExhausted):
		return text(lang, lblQuotaExhausted)
	case errors.Is(err, tier.ErrInvalidSecret):
		return text(lang, lblInvalidSecret)
	case errors.Is(err, signal.ErrFeedbackClosed):
		return text(lang, lblFeedbackClosed)
	case errors.Is(err, session.ErrNotPermitted):
		return text(lang, lblNotPermitted)
	case errors.Is(err, session.ErrIllegalTransition):
		return text(lang, lblNotAllowed)
	default:
		return err.Error()
	}
}
