package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParkMillerSequence(t *testing.T) {
	rng := NewParkMiller(42)
	first := rng.Float64()
	assert.InDelta(t, float64(42*16807-1)/2147483646, first, 1e-15)

	for i := 0; i < 1000; i++ {
		v := rng.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}

	rng.Reset()
	assert.Equal(t, first, rng.Float64())
}

func TestParkMillerInstancesAreIndependent(t *testing.T) {
	a := NewParkMiller(DefaultSeed)
	b := NewParkMiller(DefaultSeed)
	a.Float64()
	a.Float64()
	assert.Equal(t, NewParkMiller(DefaultSeed).Float64(), b.Float64())
}

func TestParkMillerSeedFolding(t *testing.T) {
	assert.Equal(t, NewParkMiller(DefaultSeed).Float64(), NewParkMiller(0).Float64())
	assert.Equal(t, NewParkMiller(5).Float64(), NewParkMiller(5+2147483647).Float64())
}

func TestPCGReset(t *testing.T) {
	src := NewPCG(7)
	seq := []float64{src.Float64(), src.Float64(), src.Float64()}
	src.Reset()
	assert.Equal(t, seq, []float64{src.Float64(), src.Float64(), src.Float64()})
}

func TestNewSource(t *testing.T) {
	assert.IsType(t, &ParkMiller{}, NewSource(SourceParkMiller, 42))
	assert.IsType(t, &ParkMiller{}, NewSource("", 42))
	assert.IsType(t, &pcgSource{}, NewSource(SourcePCG, 42))
}

func TestParkMillerStatApprox(t *testing.T) {
	const n = 100000
	rng := NewParkMiller(DefaultSeed)
	var sum float64
	for i := 0; i < n; i++ {
		sum += rng.Float64()
	}
	// mean of U[0,1) should be around 0.5
	mean := sum / n
	if diff := mean - 0.5; diff > 0.01 || diff < -0.01 {
		t.Fatalf("mean=%f not close to 0.5", mean)
	}
}
