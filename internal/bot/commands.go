package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/session"
	"signal-desk/internal/signal"
	"signal-desk/internal/tier"
)

const historyLimit = 10

// Sessions is the registry surface the bot drives.
type Sessions interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Dispatch(ctx context.Context, id string, ev session.Event) (session.Snapshot, error)
	Snapshot(ctx context.Context, id string) (session.Snapshot, error)
}

// Commands holds the chat command logic independent of the Telegram client.
type Commands struct {
	sessions      Sessions
	analysisDelay time.Duration
}

func NewCommands(sessions Sessions, analysisDelay time.Duration) *Commands {
	return &Commands{sessions: sessions, analysisDelay: analysisDelay}
}

// SessionID maps a Telegram chat onto a session id.
func SessionID(chatID int64) string {
	return "tg" + strconv.FormatInt(chatID, 10)
}

func (c *Commands) Start(ctx context.Context, id string) string {
	snap, err := c.sessions.Dispatch(ctx, id, session.Home())
	if err != nil {
		return replyError(err)
	}
	return "Welcome to Signal Desk.\n" +
		"/assets list assets, /pick EURUSD to choose one, /tf 5m to analyse.\n" +
		formatStatus(snap)
}

func (c *Commands) Assets(ctx context.Context, id string) string {
	snap, err := c.sessions.Snapshot(ctx, id)
	if err != nil {
		return replyError(err)
	}
	lines := []string{"Assets:"}
	for _, a := range domain.Assets {
		line := fmt.Sprintf("%s %s %s (%s)", a.ID, a.Name, a.Price, a.Change)
		if a.Category == domain.CategoryForex && !snap.ForexOpen {
			line += " [closed]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (c *Commands) Pick(ctx context.Context, id string, args []string) string {
	asset, err := parseAssetArg(args)
	if err != nil {
		return "Usage: /pick EURUSD\nSupported: " + strings.Join(assetIDs(), ", ")
	}
	// Re-enter the picker from wherever the chat left off.
	if _, err := c.sessions.Dispatch(ctx, id, session.Home()); err != nil {
		return replyError(err)
	}
	if _, err := c.sessions.Dispatch(ctx, id, session.StartBrowsing()); err != nil {
		return replyError(err)
	}
	if _, err := c.sessions.Dispatch(ctx, id, session.SelectAsset(asset)); err != nil {
		return replyError(err)
	}
	return fmt.Sprintf("%s selected. Choose a timeframe: /tf %s",
		asset.Name, strings.Join(domain.SupportedTimeframes, " | "))
}

func (c *Commands) Timeframe(ctx context.Context, id string, args []string) string {
	tf, err := parseTimeframeArg(args)
	if err != nil {
		return "Usage: /tf 5m\nSupported: " + strings.Join(domain.SupportedTimeframes, ", ")
	}
	if _, err := c.sessions.Dispatch(ctx, id, session.SelectTimeframe(tf)); err != nil {
		return replyError(err)
	}

	if c.analysisDelay > 0 {
		select {
		case <-time.After(c.analysisDelay):
		case <-ctx.Done():
			return "Analysis cancelled."
		}
	}
	snap, err := c.sessions.Dispatch(ctx, id, session.AnalysisComplete())
	if err != nil {
		return replyError(err)
	}
	return formatResult(snap)
}

func (c *Commands) Again(ctx context.Context, id string) string {
	snap, err := c.sessions.Dispatch(ctx, id, session.NewCycle())
	if err != nil {
		return replyError(err)
	}
	return formatResult(snap)
}

func (c *Commands) Feedback(ctx context.Context, id string, status domain.SignalStatus) string {
	snap, err := c.sessions.Snapshot(ctx, id)
	if err != nil {
		return replyError(err)
	}
	if snap.CurrentSignal == nil {
		return "No signal to rate yet."
	}
	snap, err = c.sessions.Dispatch(ctx, id, session.SubmitFeedback(snap.CurrentSignal.ID, status))
	if err != nil {
		return replyError(err)
	}
	return fmt.Sprintf("Recorded %s for %s.", status, snap.CurrentSignal.ID)
}

func (c *Commands) History(ctx context.Context, id string) string {
	snap, err := c.sessions.Snapshot(ctx, id)
	if err != nil {
		return replyError(err)
	}
	if len(snap.History) == 0 {
		return "No signals yet."
	}
	items := snap.History
	if len(items) > historyLimit {
		items = items[:historyLimit]
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "Latest signals:")
	for _, s := range items {
		lines = append(lines, formatSignal(s))
	}
	return strings.Join(lines, "\n")
}

func (c *Commands) Upgrade(ctx context.Context, id string, args []string) string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "Usage: /upgrade <code>"
	}
	snap, err := c.sessions.Dispatch(ctx, id, session.SubmitUpgradeSecret(strings.TrimSpace(args[0])))
	if err != nil {
		return replyError(err)
	}
	return "Status upgraded.\n" + formatStatus(snap)
}

func (c *Commands) Reset(ctx context.Context, id string) string {
	snap, err := c.sessions.Dispatch(ctx, id, session.ResetQuota())
	if err != nil {
		return replyError(err)
	}
	return "Quota reset.\n" + formatStatus(snap)
}

func (c *Commands) Status(ctx context.Context, id string) string {
	snap, err := c.sessions.Snapshot(ctx, id)
	if err != nil {
		return replyError(err)
	}
	return formatStatus(snap)
}

func parseAssetArg(args []string) (domain.Asset, error) {
	if len(args) != 1 {
		return domain.Asset{}, errors.New("expected one asset")
	}
	id := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(args[0]), "/", ""))
	a, ok := domain.FindAsset(id)
	if !ok {
		return domain.Asset{}, errors.New("unsupported asset")
	}
	return a, nil
}

func parseTimeframeArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected one timeframe")
	}
	tf := strings.ToLower(strings.TrimSpace(args[0]))
	if !domain.IsSupportedTimeframe(tf) {
		return "", errors.New("unsupported timeframe")
	}
	return tf, nil
}

func assetIDs() []string {
	out := make([]string, 0, len(domain.Assets))
	for _, a := range domain.Assets {
		out = append(out, a.ID)
	}
	return out
}

func replyError(err error) string {
	switch {
	case errors.Is(err, session.ErrMarketClosed):
		return "Forex is closed Friday to Sunday. Try crypto or metals."
	case errors.Is(err, session.ErrQuotaExhausted):
		return "Signal limit reached. Wait for the next reset or /upgrade."
	case errors.Is(err, session.ErrIllegalTransition), errors.Is(err, session.ErrMissingSelection):
		return "Not available right now. Start with /pick."
	case errors.Is(err, session.ErrNotPermitted):
		return "Quota reset is available for ELITE and VIP only."
	case errors.Is(err, tier.ErrInvalidSecret):
		return "Invalid access code."
	case errors.Is(err, signal.ErrFeedbackClosed):
		return "Result already recorded."
	default:
		return "Error: " + err.Error()
	}
}

func formatStatus(snap session.Snapshot) string {
	if snap.Unlimited {
		return fmt.Sprintf("Status %s, %d signals used, unlimited.", snap.Tier, snap.SignalsUsed)
	}
	return fmt.Sprintf("Status %s, %d/%d signals used, next reset %s UTC.",
		snap.Tier, snap.SignalsUsed, snap.Limit, snap.NextReset.UTC().Format("Jan 02 15:04"))
}

func formatResult(snap session.Snapshot) string {
	if snap.CurrentSignal == nil {
		return "No signal generated."
	}
	return formatSignal(*snap.CurrentSignal) + "\nRate it with /win or /loss, or /again for a new one."
}

func formatSignal(s domain.Signal) string {
	return fmt.Sprintf("%s %s %s %s %d%% %s at %s",
		s.ID,
		s.Asset.Name,
		s.Timeframe,
		s.Direction,
		s.Probability,
		s.Status,
		s.Timestamp.UTC().Format(time.RFC822),
	)
}
