package arcplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/arcplot/pkg/dotplot"
)

func TestNewLayoutSizing(t *testing.T) {
	req := Request{Start: 1, End: 20}
	arcs, err := Arcs(scenarioTable(), req)
	require.NoError(t, err)

	l := NewLayout(arcs, req)
	assert.Equal(t, 19.0/4, l.WidthUnits)
	assert.Equal(t, 5.0, l.MaxHalfSpan)
	assert.Equal(t, 5.0/4, l.HeightUnits)
	assert.Equal(t, 0.5, l.XMin)
	assert.Equal(t, 20.5, l.XMax)
	assert.Equal(t, 0.0, l.YMin)
	assert.Equal(t, 5.5, l.YMax)
	assert.Len(t, l.Arcs, 4)
	assert.Len(t, l.Ticks(), 20)
	assert.Equal(t, 1, l.Ticks()[0])
	assert.Equal(t, 20, l.Ticks()[19])
}

func TestNewLayoutEmptyWindow(t *testing.T) {
	req := Request{Start: 16, End: 20}
	arcs, err := Arcs(scenarioTable(), req)
	require.NoError(t, err)
	require.Empty(t, arcs)

	l := NewLayout(arcs, req)
	assert.Equal(t, 0.0, l.HeightUnits)
	assert.Equal(t, 0.0, l.MaxHalfSpan)
	assert.Equal(t, 0.5, l.YMax)
	assert.Equal(t, 1.0, l.WidthUnits)
	assert.Empty(t, l.Arcs)
}

func TestNewLayoutIgnoresArcsOutsideWindow(t *testing.T) {
	outside := NewArc(dotplot.Pair{I: 1, J: 30, NegLog10P: 0.01}, BandHigh)
	inside := NewArc(dotplot.Pair{I: 5, J: 9, NegLog10P: 0.01}, BandHigh)

	l := NewLayout([]Arc{outside, inside}, Request{Start: 4, End: 10})
	assert.Equal(t, 2.0, l.MaxHalfSpan)
}

func TestFrameMapping(t *testing.T) {
	req := Request{Start: 1, End: 20}
	arcs, err := Arcs(scenarioTable(), req)
	require.NoError(t, err)
	l := NewLayout(arcs, req)
	opts := DefaultOptions()

	f := newFrame(l, opts)
	assert.InDelta(t, 475, f.plotW, 1e-9)
	assert.InDelta(t, 125, f.plotH, 1e-9)
	assert.InDelta(t, 25, f.x(l.XMin, l), 1e-9)
	assert.InDelta(t, 500, f.x(l.XMax, l), 1e-9)
	assert.InDelta(t, f.baseline(), f.y(0, l), 1e-9)
	assert.InDelta(t, 25, f.y(l.YMax, l), 1e-9)
	assert.Equal(t, 525.0, f.width)
	assert.Equal(t, 210.0, f.height)
}
