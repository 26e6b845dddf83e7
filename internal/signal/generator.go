package signal

import (
	"math/rand/v2"
	"sync"
	"time"

	"signal-desk/internal/domain"

	"github.com/google/uuid"
)

const (
	// BaseProbability is the lowest confidence a signal can carry.
	BaseProbability = domain.MinProbability
	// ProbabilitySpread is the largest random offset added to BaseProbability.
	ProbabilitySpread = domain.MaxProbability - domain.MinProbability

	idPrefix = "INF-"
)

// Generator builds pseudo-random signals. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	newID func() string
}

// NewGenerator returns a generator driven by src. A nil src seeds a fresh
// PCG source; a nil newID falls back to prefixed UUIDs.
func NewGenerator(src rand.Source, newID func() string) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if newID == nil {
		newID = func() string { return idPrefix + uuid.NewString() }
	}
	return &Generator{rng: rand.New(src), newID: newID}
}

// Generate creates a pending signal for the asset/timeframe pair.
func (g *Generator) Generate(asset domain.Asset, timeframe string, now time.Time) domain.Signal {
	g.mu.Lock()
	direction := domain.DirectionSell
	if g.rng.IntN(2) == 0 {
		direction = domain.DirectionBuy
	}
	probability := BaseProbability + g.rng.IntN(ProbabilitySpread+1)
	g.mu.Unlock()

	return domain.Signal{
		ID:          g.newID(),
		Asset:       asset,
		Timeframe:   timeframe,
		Direction:   direction,
		Probability: probability,
		Timestamp:   now,
		Status:      domain.StatusPending,
	}
}
