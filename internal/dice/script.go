package dice

// Script is a Source that replays fixed values in order, wrapping around
// when exhausted. Ints are reduced modulo n. An empty list yields zero.
type Script struct {
	Ints   []int
	Floats []float64

	nextInt   int
	nextFloat int
}

// Intn returns the next scripted integer modulo n
func (s *Script) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.nextInt%len(s.Ints)]
	s.nextInt++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Float64 returns the next scripted float
func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.nextFloat%len(s.Floats)]
	s.nextFloat++
	return v
}
