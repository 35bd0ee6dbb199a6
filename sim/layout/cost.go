package layout

import "github.com/sirupsen/logrus"

// CostConfig groups the advisory cost-estimate parameters.
type CostConfig struct {
	RackPrice   float64 // purchase price of one rack unit
	RackCap     int     // slots per purchased rack
	TravelSpeed float64 // meters covered per time-value unit of walking
	TimeValue   float64 // monetary value of one unit of a rider's time
}

// DefaultCostConfig returns the reference cost assumptions.
func DefaultCostConfig() CostConfig {
	return CostConfig{
		RackPrice:   825.00,
		RackCap:     10,
		TravelSpeed: 4828.0,
		TimeValue:   15.00,
	}
}

// Academic-year time frame: five days a week, 36 weeks.
const annualTimeFrame = 5.0 * 36.0

// EstimateAnnualCosts logs the projected annual cost of each pad's non-ideal
// utilization and returns the per-pad figures. Informational only: it makes
// no mutation, and a later purchasing decision would consume it.
func (l *CampusLayout) EstimateAnnualCosts(cfg CostConfig) map[string]float64 {
	costPerMeter := 1.0 / (cfg.TravelSpeed / cfg.TimeValue)

	out := make(map[string]float64, len(l.padOrder))
	for _, name := range l.padOrder {
		score := l.pads[name].UtilizationScore()
		annual := (score * costPerMeter) * annualTimeFrame
		out[name] = annual
		logrus.Infof("pad %s is costing $%.2f from non-ideal utilization", name, annual)
	}
	return out
}
