package breed

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/big"
	"math/rand/v2"
	"sync"
)

// RandomSource is the entropy used by resolution.
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n), n > 0
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// Read 53bit random => [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

func (cryptoRNG) IntN(n int) int {
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return rand.IntN(n)
	}
	return int(v.Int64())
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (tests, simulations with a fixed seed)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
func (s *seededRNG) IntN(n int) int   { return s.r.IntN(n) }

// lockedRNG serializes access to a generator shared between goroutines.
type lockedRNG struct {
	mu  sync.Mutex
	src RandomSource
}

// NewLockedRNG wraps src so it can be shared by concurrent callers.
// A nil src wraps DefaultRNG.
func NewLockedRNG(src RandomSource) RandomSource {
	if src == nil {
		src = DefaultRNG()
	}
	if l, ok := src.(*lockedRNG); ok {
		return l
	}
	return &lockedRNG{src: src}
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}
