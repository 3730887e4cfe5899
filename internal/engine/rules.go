package engine

// IncrementStep is one breakpoint of the bid-increment table: bids below
// Below step by Step. Breakpoints are ordered ascending.
type IncrementStep struct {
	Below int64
	Step  int64
}

// Rules are the auction policy constants. They are configuration, not
// engine behavior: the engine never hard-codes breakpoints or caps.
type Rules struct {
	// SquadCap is the maximum roster size per team.
	SquadCap int

	// OverseasCap is the maximum overseas players per roster.
	OverseasCap int

	// MaxProxyRounds bounds proxy resolution per accepted bid, guarding
	// against runaway loops from misconfigured data.
	MaxProxyRounds int

	// DefaultBasePrice applies to catalog entries without a base price.
	DefaultBasePrice int64

	// ReleasedBasePrice overwrites a released player's base price before
	// re-auction.
	ReleasedBasePrice int64

	// DefaultCountdown is the countdown length in seconds; Min/Max bound
	// admin overrides.
	DefaultCountdown int
	MinCountdown     int
	MaxCountdown     int

	// Increments is the bid-increment table; TopStep applies above the
	// last breakpoint.
	Increments []IncrementStep
	TopStep    int64

	// Special pool list names with positional conventions: released is
	// pinned to the front of the list order, accelerated and skipped to
	// the back.
	ReleasedList    string
	AcceleratedList string
	SkippedList     string
}

// DefaultRules mirrors the production auction configuration: 120 crore
// purses step through lakh-scale increments, 25-player squads with 8
// overseas slots.
func DefaultRules() Rules {
	return Rules{
		SquadCap:          25,
		OverseasCap:       8,
		MaxProxyRounds:    100,
		DefaultBasePrice:  2_000_000,
		ReleasedBasePrice: 2_000_000,
		DefaultCountdown:  120,
		MinCountdown:      5,
		MaxCountdown:      300,
		Increments: []IncrementStep{
			{Below: 10_000_000, Step: 500_000},
			{Below: 20_000_000, Step: 1_000_000},
			{Below: 50_000_000, Step: 2_000_000},
		},
		TopStep:         2_500_000,
		ReleasedList:    "released",
		AcceleratedList: "accelerated",
		SkippedList:     "skipped",
	}
}

// Increment returns the step required above the given current bid. The
// step function is monotonic: larger bids never require smaller steps.
func (r Rules) Increment(currentBid int64) int64 {
	for _, s := range r.Increments {
		if currentBid < s.Below {
			return s.Step
		}
	}
	return r.TopStep
}
