package pace

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PaceStats summarizes the timed laps of a series. Untimed laps are ignored;
// with no timed laps every figure is zero.
type PaceStats struct {
	TimedLaps int     `json:"timed_laps"`
	BestLap   int     `json:"best_lap"`
	Best      float64 `json:"best"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"std_dev"`
}

// SummarizePace computes best, mean, empirical median (the lower middle value
// for an even count) and sample standard deviation of lap durations.
func SummarizePace(points []Point) PaceStats {
	var (
		xs   []float64
		laps []int
	)
	for _, p := range points {
		if p.LapDuration == nil {
			continue
		}
		xs = append(xs, *p.LapDuration)
		laps = append(laps, p.LapNumber)
	}
	if len(xs) == 0 {
		return PaceStats{}
	}

	best := floats.MinIdx(xs)
	ps := PaceStats{
		TimedLaps: len(xs),
		BestLap:   laps[best],
		Best:      xs[best],
		Mean:      stat.Mean(xs, nil),
	}
	if len(xs) > 1 {
		ps.StdDev = stat.StdDev(xs, nil)
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	ps.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return ps
}

// BestFormatted is the best lap in race-clock text, or "" without timed laps.
func (s PaceStats) BestFormatted() string {
	if s.TimedLaps == 0 {
		return ""
	}
	return FormatDuration(&s.Best)
}

// MeanFormatted is the mean lap in race-clock text, or "" without timed laps.
func (s PaceStats) MeanFormatted() string {
	if s.TimedLaps == 0 {
		return ""
	}
	return FormatDuration(&s.Mean)
}
