package report

import (
	"sensorsim/internal/scan"
)

// Collector is a scan.Adapter that keeps the latest samples per sensor in
// memory, for headless runs.
type Collector struct {
	samples map[string][]scan.Sample
}

var _ scan.Adapter = (*Collector)(nil)

func NewCollector() *Collector {
	return &Collector{samples: make(map[string][]scan.Sample)}
}

func (c *Collector) Replace(sensorID string, samples []scan.Sample) {
	c.samples[sensorID] = append([]scan.Sample(nil), samples...)
}

func (c *Collector) Release(sensorID string) {
	delete(c.samples, sensorID)
}

// Samples returns the live sample sets keyed by sensor id.
func (c *Collector) Samples() map[string][]scan.Sample {
	return c.samples
}
