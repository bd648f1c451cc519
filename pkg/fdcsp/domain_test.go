package fdcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalDomain(t *testing.T) {
	d := IntervalDomain(1, 3)
	require.Equal(t, 3, d.Len())
	assert.True(t, d.Contains(1))
	assert.True(t, d.Contains(3))
	assert.False(t, d.Contains(4))
}

func TestIntervalDomainEmptyOnInverted(t *testing.T) {
	d := IntervalDomain(5, 1)
	assert.Equal(t, 0, d.Len())
}

func TestSetDomainDeduplicatesPreservingOrder(t *testing.T) {
	d := SetDomain(2, 4, 2, 6, 4)
	require.Equal(t, 3, d.Len())
	assert.Equal(t, float64(2), d.At(0).Value)
	assert.Equal(t, float64(4), d.At(1).Value)
	assert.Equal(t, float64(6), d.At(2).Value)
}

func TestRangeDomainRejectsNonPositiveStep(t *testing.T) {
	_, err := RangeDomain(0, 1, 0)
	require.Error(t, err)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, InvalidDomain, fe.Kind)
}

func TestRangeDomainStepsUpToHigh(t *testing.T) {
	d, err := RangeDomain(0, 1, 0.5)
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())
	assert.InDelta(t, 0.0, d.At(0).Value, 1e-9)
	assert.InDelta(t, 0.5, d.At(1).Value, 1e-9)
	assert.InDelta(t, 1.0, d.At(2).Value, 1e-9)
}

func TestDomainIsBoolean(t *testing.T) {
	assert.True(t, SetDomain(0, 1).IsBoolean())
	assert.True(t, SetDomain(1, 0).IsBoolean())
	assert.False(t, SetDomain(0, 2).IsBoolean())
	assert.False(t, IntervalDomain(1, 3).IsBoolean())
}
