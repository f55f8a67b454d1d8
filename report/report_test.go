package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceStats(t *testing.T) {
	rep, err := Reduce("add", []float64{1, 2, 3, 4}, 10)
	require.NoError(t, err)

	assert.Equal(t, "add", rep.Name)
	assert.InDelta(t, 2.5, rep.MeanMs, 1e-12)
	assert.InDelta(t, 2.5, rep.MedianMs, 1e-12)
	assert.Equal(t, 1.0, rep.MinMs)
	assert.Equal(t, 4.0, rep.MaxMs)

	// Population std, not the sample estimator.
	assert.InDelta(t, 1.118033988749895, rep.StdMs, 1e-12)
	assert.InDelta(t, 400, rep.OpsPerSec, 1e-9)
	assert.Equal(t, 40, rep.TotalOps)
	assert.Equal(t, 4, rep.TotalSamples)
}

func TestReduceOddMedian(t *testing.T) {
	rep, err := Reduce("x", []float64{3, 1, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, rep.MedianMs)
}

func TestReduceSingleSample(t *testing.T) {
	rep, err := Reduce("x", []float64{5}, 1)
	require.NoError(t, err)

	assert.Equal(t, 5.0, rep.MedianMs)
	assert.Zero(t, rep.StdMs)
	assert.InDelta(t, 200, rep.OpsPerSec, 1e-9)
}

func TestReduceEmptyIsError(t *testing.T) {
	_, err := Reduce("x", nil, 1)
	assert.Error(t, err)
}

func TestReduceZeroMean(t *testing.T) {
	rep, err := Reduce("x", []float64{0, 0}, 1)
	require.NoError(t, err)
	assert.Zero(t, rep.OpsPerSec)
}

func sampleReports() []Report {
	return []Report{
		{
			Name: "add_small", MeanMs: 0.5, MedianMs: 0.5,
			MinMs: 0.25, MaxMs: 1.5, StdMs: 0.125,
			OpsPerSec: 2000, TotalOps: 50, TotalSamples: 5,
		},
		{
			Name: "matmul_big", MeanMs: 1250, MedianMs: 1200,
			MinMs: 1000, MaxMs: 1500, StdMs: 12.5,
			OpsPerSec: 0.8, TotalOps: 3, TotalSamples: 3,
		},
	}
}

func TestWriteJSONGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReports()[:1]))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "reports", buf.Bytes())
}

func TestWriteValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteValues(&buf, []any{6.0, nil}))
	assert.Equal(t, "[6,null]\n", buf.String())
}

func TestWriteTableGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleReports()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "table", buf.Bytes())
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteTable(&buf, nil))
}
