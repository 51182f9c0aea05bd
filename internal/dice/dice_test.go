package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeFixed(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 5.0, r.Range(5, 5))
	}
}

func TestRangeBounds(t *testing.T) {
	r := NewSeeded(42)
	for i := 0; i < 1000; i++ {
		v := r.Range(5, 10)
		assert.GreaterOrEqual(t, v, 5.0)
		assert.Less(t, v, 10.0)
	}
}

func TestChanceExtremes(t *testing.T) {
	s := &Script{Floats: []float64{0, 0.5, 0.999}}
	r := NewRoller(s)

	for i := 0; i < 50; i++ {
		assert.False(t, r.Chance(0), "probability 0 must never fire")
		assert.True(t, r.Chance(1), "probability 1 must always fire")
	}
	assert.Equal(t, 0, s.nextFloat, "extreme probabilities do not consume draws")

	assert.True(t, r.Chance(0.25))  // 0
	assert.False(t, r.Chance(0.25)) // 0.5
	assert.False(t, r.Chance(0.25)) // 0.999
}

func TestSeededIsReproducible(t *testing.T) {
	a, b := NewSeeded(99), NewSeeded(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
		assert.Equal(t, a.Range(0, 1), b.Range(0, 1))
	}
}

func TestIntnAndSign(t *testing.T) {
	r := NewRoller(&Script{Ints: []int{0, 1, 2, 7, -1}})

	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, -1, r.Sign()) // 0
	assert.Equal(t, 0, r.Sign())  // 1
	assert.Equal(t, 1, r.Sign())  // 2
	assert.Equal(t, 2, r.Intn(5)) // 7 % 5
	assert.Equal(t, 4, r.Intn(5)) // -1 wraps
}

func TestOneIn(t *testing.T) {
	r := NewRoller(&Script{Ints: []int{0, 3}})
	assert.True(t, r.OneIn(10))
	assert.False(t, r.OneIn(10))
	assert.True(t, r.OneIn(1))
	assert.False(t, r.OneIn(0))
}
