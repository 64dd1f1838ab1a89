// Package dice holds the roll configuration, outcomes and the random roller.
package dice

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	// Faces is the number of faces on every die.
	Faces = 6
	// MinCount and MaxCount bound the number of dice rolled at once.
	MinCount = 1
	MaxCount = 5
)

// FaceSet names one of the two face image collections.
type FaceSet string

const (
	// FaceSetQ is the ivory die with dark pips. It is the default.
	FaceSetQ FaceSet = "Q"
	// FaceSetW is the crimson die with white pips.
	FaceSetW FaceSet = "W"
)

// FaceSets lists the recognized face sets in display order.
var FaceSets = []FaceSet{FaceSetQ, FaceSetW}

// ParseFaceSet normalizes user input to a recognized face set.
// Anything unrecognized maps to FaceSetQ.
func ParseFaceSet(s string) FaceSet {
	switch fs := FaceSet(strings.ToUpper(strings.TrimSpace(s))); fs {
	case FaceSetQ, FaceSetW:
		return fs
	default:
		return FaceSetQ
	}
}

// Valid reports whether fs is one of the recognized face sets.
func (fs FaceSet) Valid() bool {
	return fs == FaceSetQ || fs == FaceSetW
}

// ClampCount forces a requested dice count into [MinCount, MaxCount].
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// Config is the immutable roll configuration. The zero value is not valid;
// build one with NewConfig.
type Config struct {
	faceSet FaceSet
	count   int
}

// NewConfig normalizes the requested face set and clamps the count.
func NewConfig(faceSet string, count int) Config {
	return Config{
		faceSet: ParseFaceSet(faceSet),
		count:   ClampCount(count),
	}
}

// FaceSet returns the effective face set.
func (c Config) FaceSet() FaceSet { return c.faceSet }

// Count returns the effective number of dice.
func (c Config) Count() int { return c.count }

// Outcome is the ordered list of face values from one completed roll.
type Outcome []int

// Total is the arithmetic sum of the face values.
func (o Outcome) Total() int {
	total := 0
	for _, v := range o {
		total += v
	}
	return total
}

// Valid reports whether o has exactly count values, each in [1, Faces].
func (o Outcome) Valid(count int) bool {
	if len(o) != count {
		return false
	}
	for _, v := range o {
		if v < 1 || v > Faces {
			return false
		}
	}
	return true
}

// String renders the outcome as "[v1, v2, ...]".
func (o Outcome) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range o {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

// Source is the randomness a Roller draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSeededSource returns a deterministic PCG source. Different stream values
// give independent sequences for the same seed.
func NewSeededSource(seed, stream uint64) Source {
	return rand.New(rand.NewPCG(seed, stream))
}

// NewRandomSource returns a PCG source seeded from the runtime's entropy.
func NewRandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Roller draws uniform face values.
type Roller struct {
	src Source
}

// NewRoller creates a Roller. A nil src uses NewRandomSource.
func NewRoller(src Source) *Roller {
	if src == nil {
		src = NewRandomSource()
	}
	return &Roller{src: src}
}

// Face returns a single uniform value in [1, Faces].
func (r *Roller) Face() int {
	return r.src.IntN(Faces) + 1
}

// Roll returns n independent face values.
func (r *Roller) Roll(n int) Outcome {
	out := make(Outcome, n)
	for i := range out {
		out[i] = r.Face()
	}
	return out
}
