package models

// Metric identifies which daily metric the floor plan is displaying.
type Metric string

const (
	// MetricCoinIn is the daily coin-in metric.
	MetricCoinIn Metric = "coin_in"
	// MetricNetWin is the daily net-win metric.
	MetricNetWin Metric = "net_win"
)

// Label returns the human-readable name of the metric.
func (m Metric) Label() string {
	switch m {
	case MetricCoinIn:
		return "Daily Coin In"
	case MetricNetWin:
		return "Daily Net Win"
	}
	return string(m)
}

// Placement pairs a floor-plan cell address with the note text to insert
// there.
type Placement struct {
	// Cell is the A1-style cell address on the floor plan.
	Cell string `json:"cell"`
	// Text is the multiline note text.
	Text string `json:"text"`
}
