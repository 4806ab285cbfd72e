package render

import (
	"math"

	"bikeflow.org/internal/models"
)

const (
	// RadiusDomainMax is the traffic count mapped to the largest radius.
	RadiusDomainMax = 2000

	MinRadius           = 2
	MaxRadiusUnfiltered = 10
	MaxRadiusFiltered   = 20
)

// SqrtScale maps a domain onto a range through a square root, so circle
// areas grow linearly with the value. Values outside the domain extrapolate.
type SqrtScale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// Scale returns the range value for v.
func (s SqrtScale) Scale(v float64) float64 {
	d0, d1 := signedSqrt(s.DomainMin), signedSqrt(s.DomainMax)
	if d0 == d1 {
		return s.RangeMin
	}
	t := (signedSqrt(v) - d0) / (d1 - d0)
	return s.RangeMin + t*(s.RangeMax-s.RangeMin)
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// RadiusScale returns the marker radius scale for a filter. A windowed view
// holds far fewer trips than the whole day, so it gets the wider range.
func RadiusScale(f models.TimeFilter) SqrtScale {
	maxRadius := float64(MaxRadiusUnfiltered)
	if f.IsFiltered() {
		maxRadius = MaxRadiusFiltered
	}
	return SqrtScale{
		DomainMin: 0,
		DomainMax: RadiusDomainMax,
		RangeMin:  MinRadius,
		RangeMax:  maxRadius,
	}
}
