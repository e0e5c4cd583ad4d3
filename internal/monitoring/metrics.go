package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	BetsPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bets_placed_total",
			Help: "Accepted bets",
		},
		[]string{"game"},
	)

	AmountWagered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amount_wagered_total",
			Help: "Token units staked",
		},
		[]string{"game"},
	)

	RoundsOpened = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rounds_opened_total",
			Help: "Rounds opened by the clock",
		},
	)

	RoundsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rounds_settled_total",
			Help: "Position settlements applied",
		},
		[]string{"game"},
	)

	PayoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payouts_total",
			Help: "Token units paid to pending winnings",
		},
		[]string{"game"},
	)

	ForfeitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forfeits_total",
			Help: "Token units kept from losing stakes",
		},
		[]string{"game"},
	)

	ClaimsPaid = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claims_paid_total",
			Help: "Token units claimed to wallets",
		},
		[]string{"game"},
	)

	InsolvencyHalts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insolvency_halts_total",
			Help: "Settlements halted by an uncovered payout",
		},
		[]string{"game"},
	)

	Bankroll = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "house_bankroll",
			Help: "House bankroll by game",
		},
		[]string{"game"},
	)

	Reserved = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "house_reserved",
			Help: "Bankroll promised to live bets by game",
		},
		[]string{"game"},
	)
)

func Init() {
	prometheus.MustRegister(HttpRequests)
	prometheus.MustRegister(BetsPlaced)
	prometheus.MustRegister(AmountWagered)
	prometheus.MustRegister(RoundsOpened)
	prometheus.MustRegister(RoundsSettled)
	prometheus.MustRegister(PayoutsTotal)
	prometheus.MustRegister(ForfeitsTotal)
	prometheus.MustRegister(ClaimsPaid)
	prometheus.MustRegister(InsolvencyHalts)
	prometheus.MustRegister(Bankroll)
	prometheus.MustRegister(Reserved)
}

// ObserveHouse refreshes the balance gauges after an operation.
func ObserveHouse(game string, bankroll, reserved uint64) {
	Bankroll.WithLabelValues(game).Set(float64(bankroll))
	Reserved.WithLabelValues(game).Set(float64(reserved))
}
