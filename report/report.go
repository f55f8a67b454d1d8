// Package report reduces timing samples into summary statistics and
// formats result documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report is the externally emitted record for one spec. Field names are
// part of the cross-implementation contract.
type Report struct {
	Name         string  `json:"name"`
	MeanMs       float64 `json:"mean_ms"`
	MedianMs     float64 `json:"median_ms"`
	MinMs        float64 `json:"min_ms"`
	MaxMs        float64 `json:"max_ms"`
	StdMs        float64 `json:"std_ms"`
	OpsPerSec    float64 `json:"ops_per_sec"`
	TotalOps     int     `json:"total_ops"`
	TotalSamples int     `json:"total_samples"`
}

// Reduce collapses per-operation sample times (milliseconds) into one
// Report. opsPerSample is the calibrated batch size behind each sample
// (1 in legacy fixed-iteration mode).
func Reduce(name string, samplesMs []float64, opsPerSample int) (Report, error) {
	if len(samplesMs) == 0 {
		return Report{}, fmt.Errorf("reduce %s: no samples", name)
	}

	mean := stat.Mean(samplesMs, nil)

	opsPerSec := 0.0
	if mean > 0 {
		opsPerSec = 1000 / mean
	}

	return Report{
		Name:         name,
		MeanMs:       mean,
		MedianMs:     median(samplesMs),
		MinMs:        floats.Min(samplesMs),
		MaxMs:        floats.Max(samplesMs),
		StdMs:        popStd(samplesMs, mean),
		OpsPerSec:    opsPerSec,
		TotalOps:     opsPerSample * len(samplesMs),
		TotalSamples: len(samplesMs),
	}, nil
}

// median interpolates the middle pair for even lengths, matching the
// reference implementation's statistic.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}

// popStd is the population standard deviation, matching the reference
// implementation's std rather than the sample estimator.
func popStd(xs []float64, mean float64) float64 {
	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}

	return math.Sqrt(acc / float64(len(xs)))
}

// WriteJSON emits the benchmark result document: an ordered report
// sequence, indented to match the reference side's output.
func WriteJSON(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(reports)
}

// WriteValues emits the validation result document: a positionally
// aligned sequence of encoded values or nulls.
func WriteValues(w io.Writer, values []any) error {
	return json.NewEncoder(w).Encode(values)
}

// WriteTable renders a human-readable markdown table of the reports.
func WriteTable(w io.Writer, reports []Report) error {
	if len(reports) == 0 {
		return fmt.Errorf("no reports to render")
	}

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Name | Mean | Median | Min | Max | Std "+
		"| Ops/sec | Samples |")
	fmt.Fprintln(w, "|------|------|--------|-----|-----|-----"+
		"|---------|---------|")

	for _, r := range reports {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %.0f | %d |\n",
			r.Name,
			formatMs(r.MeanMs),
			formatMs(r.MedianMs),
			formatMs(r.MinMs),
			formatMs(r.MaxMs),
			formatMs(r.StdMs),
			r.OpsPerSec,
			r.TotalSamples,
		)
	}

	return nil
}

func formatMs(ms float64) string {
	switch {
	case ms >= 1000:
		return fmt.Sprintf("%.2fs", ms/1000)
	case ms >= 1:
		return fmt.Sprintf("%.2fms", ms)
	default:
		return fmt.Sprintf("%.4fms", ms)
	}
}
