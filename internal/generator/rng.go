package generator

import "math/rand/v2"

// DefaultSeed is the seed every reproducible generation run starts from.
const DefaultSeed = 42

// RandomSource abstract. Reset rewinds the sequence to its seed so separate
// runs can be compared draw for draw.
type RandomSource interface {
	Float64() float64 // [0, 1)
	Reset()
}

// Park-Miller minimal standard generator
const (
	parkMillerMultiplier = 16807
	parkMillerModulus    = 2147483647
)

// ParkMiller is a Lehmer generator; the same seed always yields the same sequence.
type ParkMiller struct {
	seed  int64
	state int64
}

// NewParkMiller creates a generator positioned at the start of the seed's sequence.
// Seeds outside (0, modulus) are folded into range; 0 becomes DefaultSeed.
func NewParkMiller(seed int64) *ParkMiller {
	seed %= parkMillerModulus
	if seed < 0 {
		seed += parkMillerModulus
	}
	if seed == 0 {
		seed = DefaultSeed
	}
	return &ParkMiller{seed: seed, state: seed}
}

func (p *ParkMiller) Float64() float64 {
	p.state = p.state * parkMillerMultiplier % parkMillerModulus
	return float64(p.state-1) / float64(parkMillerModulus-1)
}

func (p *ParkMiller) Reset() { p.state = p.seed }

// Replicable PCG source, for runs that want a longer period than Park-Miller.
type pcgSource struct {
	seed uint64
	r    *rand.Rand
}

// NewPCG returns a resettable PCG-backed source.
func NewPCG(seed uint64) RandomSource {
	s := &pcgSource{seed: seed}
	s.Reset()
	return s
}

func (s *pcgSource) Float64() float64 { return s.r.Float64() }

func (s *pcgSource) Reset() { s.r = rand.New(rand.NewPCG(s.seed, 0)) }

// NewSource builds a source by name: "park_miller" (default) or "pcg".
func NewSource(kind string, seed int64) RandomSource {
	if kind == SourcePCG {
		return NewPCG(uint64(seed))
	}
	return NewParkMiller(seed)
}

// source kinds accepted by NewSource
const (
	SourceParkMiller = "park_miller"
	SourcePCG        = "pcg"
)
