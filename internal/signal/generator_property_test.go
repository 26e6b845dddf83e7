package signal

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"signal-desk/internal/domain"
)

func TestGenerator_ProbabilityAndDirection_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	asset := domain.Assets[0]

	properties.Property("probability in [84, 94] and direction is BUY or SELL", prop.ForAll(
		func(seed1, seed2 uint64) bool {
			g := NewGenerator(rand.NewPCG(seed1, seed2), nil)
			for i := 0; i < 20; i++ {
				s := g.Generate(asset, "1m", time.Now())
				if s.Probability < 84 || s.Probability > 94 {
					return false
				}
				if s.Direction != domain.DirectionBuy && s.Direction != domain.DirectionSell {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("history holds N entries with the latest at the head", prop.ForAll(
		func(n int) bool {
			g := NewGenerator(rand.NewPCG(uint64(n), 1), nil)
			h := NewHistory(nil)
			var last domain.Signal
			for i := 0; i < n; i++ {
				last = g.Generate(asset, "1m", time.Now())
				h.Prepend(last)
			}
			if h.Len() != n {
				return false
			}
			if n == 0 {
				_, ok := h.Head()
				return !ok
			}
			head, ok := h.Head()
			return ok && head.ID == last.ID
		},
		gen.IntRange(0, 60),
	))

	properties.TestingRun(t)
}
