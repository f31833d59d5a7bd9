// Package report condenses scan samples into per-sensor range statistics and
// range-profile plots.
package report

import (
	"sort"

	"sensorsim/internal/scan"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SensorSummary describes one sensor's returns from a single evaluation.
type SensorSummary struct {
	SensorID string `json:"sensor_id"`
	Samples  int    `json:"samples"`
	Hits     int    `json:"hits"`
	// Misses resolved to the sensor's max range.
	Misses int     `json:"misses"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	// HitMean is the mean distance over hits only; zero when nothing was hit.
	HitMean float64 `json:"hit_mean"`
}

// HitRatio is the fraction of samples that struck geometry.
func (s SensorSummary) HitRatio() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Samples)
}

// Summarize builds one summary per sensor, ordered by sensor id. Sensors with
// no samples still get an all-zero entry.
func Summarize(samples map[string][]scan.Sample) []SensorSummary {
	ids := make([]string, 0, len(samples))
	for id := range samples {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]SensorSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, summarizeSensor(id, samples[id]))
	}
	return out
}

func summarizeSensor(id string, samples []scan.Sample) SensorSummary {
	sum := SensorSummary{SensorID: id, Samples: len(samples)}
	if len(samples) == 0 {
		return sum
	}

	dist := make([]float64, len(samples))
	var hits []float64
	for i, s := range samples {
		dist[i] = float64(s.Distance)
		if s.Hit {
			hits = append(hits, dist[i])
		}
	}
	sum.Hits = len(hits)
	sum.Misses = len(samples) - len(hits)

	sum.Min = floats.Min(dist)
	sum.Max = floats.Max(dist)
	sum.Mean, sum.StdDev = stat.MeanStdDev(dist, nil)
	if len(dist) == 1 {
		sum.StdDev = 0
	}

	sorted := append([]float64(nil), dist...)
	sort.Float64s(sorted)
	sum.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	if len(hits) > 0 {
		sum.HitMean = stat.Mean(hits, nil)
	}
	return sum
}
