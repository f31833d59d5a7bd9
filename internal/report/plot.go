package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sensorsim/internal/scan"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ProfilePlot draws distance against azimuth, one line per channel.
func ProfilePlot(sensorID string, samples []scan.Sample) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Range Profile", sensorID)
	p.X.Label.Text = "Azimuth (deg)"
	p.Y.Label.Text = "Distance"

	byChannel := make(map[int][]scan.Sample)
	for _, s := range samples {
		byChannel[s.Channel] = append(byChannel[s.Channel], s)
	}
	channels := make([]int, 0, len(byChannel))
	for ch := range byChannel {
		channels = append(channels, ch)
	}
	sort.Ints(channels)

	for i, ch := range channels {
		rows := byChannel[ch]
		sort.Slice(rows, func(a, b int) bool { return rows[a].Step < rows[b].Step })

		pts := make(plotter.XYs, len(rows))
		for j, s := range rows {
			pts[j] = plotter.XY{X: float64(s.Azimuth), Y: float64(s.Distance)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("ch %d (%.1f°)", ch, rows[0].Elevation), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteProfiles saves one PNG per sensor into dir and returns the paths written.
func WriteProfiles(dir string, samples map[string][]scan.Sample) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	ids := make([]string, 0, len(samples))
	for id := range samples {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var written []string
	for _, id := range ids {
		if len(samples[id]) == 0 {
			continue
		}
		p, err := ProfilePlot(id, samples[id])
		if err != nil {
			return written, fmt.Errorf("sensor %s: %w", id, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_profile.png", id))
		if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
			return written, fmt.Errorf("save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
