package sim

import (
	"github.com/san-kum/conserve/internal/config"
	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/physics"
	"github.com/san-kum/conserve/internal/plot"
)

// Frame is everything a renderer needs for one redraw.
type Frame struct {
	State       dynamo.State
	Domain      dynamo.Domain
	Momentum    dynamo.Series
	EnergyUpper dynamo.Series
	EnergyLower dynamo.Series
}

// Series returns the curves in draw order.
func (f Frame) Series() []dynamo.Series {
	return []dynamo.Series{f.Momentum, f.EnergyUpper, f.EnergyLower}
}

// Evaluate samples all three curves for s over d. n < 2 falls back to
// physics.Samples.
func Evaluate(s dynamo.State, d dynamo.Domain, n int, style config.StyleConfig) Frame {
	return evaluate(s, d, n, style, nil)
}

func evaluate(s dynamo.State, d dynamo.Domain, n int, style config.StyleConfig, pool *PointPool) Frame {
	if n < 2 {
		n = physics.Samples
	}
	buf := func() []dynamo.Point {
		if pool == nil {
			return make([]dynamo.Point, 0, n)
		}
		return pool.Get()
	}

	upper, lower := physics.EnergyCurveN(s, d, n)
	return Frame{
		State:  s,
		Domain: d,
		Momentum: dynamo.Series{
			Name:   plot.MomentumLegend,
			Style:  style.Momentum,
			Points: physics.AppendPoints(buf(), physics.MomentumCurveN(s, d, n)),
		},
		EnergyUpper: dynamo.Series{
			Name:   plot.EnergyLegend,
			Style:  style.Energy,
			Points: physics.AppendPoints(buf(), upper),
		},
		EnergyLower: dynamo.Series{
			Name:   plot.EnergyLegend,
			Style:  style.Energy,
			Points: physics.AppendPoints(buf(), lower),
		},
	}
}

// Summary holds the derived quantities shown next to the plot.
type Summary struct {
	Momentum       float64
	Energy         float64
	ReachableBound float64
	Elastic        dynamo.Point
	Inelastic      dynamo.Point
	EnergyLoss     float64
}

func Summarize(s dynamo.State) Summary {
	return Summary{
		Momentum:       physics.Momentum(s),
		Energy:         physics.Energy(s),
		ReachableBound: physics.ReachableBound(s),
		Elastic:        physics.ElasticOutcome(s),
		Inelastic:      physics.InelasticOutcome(s),
		EnergyLoss:     physics.EnergyLoss(s),
	}
}
