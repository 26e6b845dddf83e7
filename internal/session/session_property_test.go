package session

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"signal-desk/internal/domain"
	"signal-desk/internal/store"
)

// randomEvent maps a generated code onto an event; the catalog and the
// timeframe list cover valid and rejected inputs alike.
func randomEvent(code int) Event {
	switch code % 10 {
	case 0:
		return StartBrowsing()
	case 1:
		return SelectAsset(domain.Assets[(code/10)%len(domain.Assets)])
	case 2:
		tfs := domain.SupportedTimeframes
		return SelectTimeframe(tfs[(code/10)%len(tfs)])
	case 3, 4:
		return AnalysisComplete()
	case 5:
		return NewCycle()
	case 6:
		return Back()
	case 7:
		return Home()
	case 8:
		return OpenCalendar()
	default:
		return ToggleTheme()
	}
}

func TestSession_EventSequences_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("signals used never exceeds the tier limit", prop.ForAll(
		func(codes []int, elite bool) bool {
			st := store.DefaultState(tuesday)
			if elite {
				st.Tier = domain.TierElite
			}
			clock := &fakeClock{now: tuesday}
			s, _ := newTestSession(t, st, clock)
			for _, c := range codes {
				clock.Advance(time.Minute)
				snap, _ := s.Dispatch(context.Background(), randomEvent(c))
				if snap.SignalsUsed > snap.Limit {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 999)),
		gen.Bool(),
	))

	properties.Property("current signal is always the head of history", prop.ForAll(
		func(codes []int) bool {
			clock := &fakeClock{now: tuesday}
			s, _ := newTestSession(t, store.DefaultState(tuesday), clock)
			generated := 0
			for _, c := range codes {
				snap, err := s.Dispatch(context.Background(), randomEvent(c))
				ev := randomEvent(c)
				if err == nil && (ev.Type == EventAnalysisComplete || ev.Type == EventNewCycle) {
					generated++
				}
				if snap.CurrentSignal != nil && snap.CurrentSignal.ID != snap.History[0].ID {
					return false
				}
				if len(snap.History) != generated {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 999)),
	))

	properties.TestingRun(t)
}
