package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFaceSet(t *testing.T) {
	tests := []struct {
		in   string
		want FaceSet
	}{
		{"Q", FaceSetQ},
		{"q", FaceSetQ},
		{"W", FaceSetW},
		{" w ", FaceSetW},
		{"", FaceSetQ},
		{"x", FaceSetQ},
		{"QW", FaceSetQ},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFaceSet(tt.in), "ParseFaceSet(%q)", tt.in)
	}
}

func TestClampCount(t *testing.T) {
	for c := -3; c <= 12; c++ {
		want := max(MinCount, min(MaxCount, c))
		assert.Equal(t, want, ClampCount(c), "ClampCount(%d)", c)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("w", 10)
	assert.Equal(t, FaceSetW, cfg.FaceSet())
	assert.Equal(t, 5, cfg.Count())

	cfg = NewConfig("q", 3)
	assert.Equal(t, FaceSetQ, cfg.FaceSet())
	assert.Equal(t, 3, cfg.Count())

	cfg = NewConfig("zzz", 0)
	assert.Equal(t, FaceSetQ, cfg.FaceSet())
	assert.Equal(t, 1, cfg.Count())
}

func TestOutcome(t *testing.T) {
	o := Outcome{3, 6, 1}
	assert.Equal(t, 10, o.Total())
	assert.Equal(t, "[3, 6, 1]", o.String())
	assert.True(t, o.Valid(3))
	assert.False(t, o.Valid(2))
	assert.False(t, Outcome{0, 2}.Valid(2))
	assert.False(t, Outcome{7}.Valid(1))
	assert.Equal(t, "[]", Outcome(nil).String())
	assert.Equal(t, 0, Outcome(nil).Total())
}

func TestRollerRange(t *testing.T) {
	r := NewRoller(NewSeededSource(1, 1))
	for n := MinCount; n <= MaxCount; n++ {
		for i := 0; i < 200; i++ {
			out := r.Roll(n)
			require.True(t, out.Valid(n), "roll %v for %d dice", out, n)
		}
	}
}

func TestRollerSeededIsDeterministic(t *testing.T) {
	a := NewRoller(NewSeededSource(7, 1)).Roll(5)
	b := NewRoller(NewSeededSource(7, 1)).Roll(5)
	assert.Equal(t, a, b)
}

// TestRollerUniform runs a chi-square goodness-of-fit test over 6000 rolls
// of a single die. 20.515 is the p=0.001 critical value for 5 degrees of freedom.
func TestRollerUniform(t *testing.T) {
	const rolls = 6000
	r := NewRoller(NewSeededSource(42, 1))

	var counts [Faces]int
	for i := 0; i < rolls; i++ {
		counts[r.Face()-1]++
	}

	expected := float64(rolls) / Faces
	chi := 0.0
	for face, observed := range counts {
		assert.NotZero(t, observed, "face %d never rolled", face+1)
		d := float64(observed) - expected
		chi += d * d / expected
	}
	assert.Less(t, chi, 20.515, "counts %v", counts)
}
