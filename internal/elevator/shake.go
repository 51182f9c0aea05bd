package elevator

// spring is the damped oscillator that bounces the cab when it starts
// moving
type spring struct {
	pos   float64
	accel float64
}

func (s *spring) kick(impulse float64) {
	s.accel += impulse
}

func (s *spring) step() {
	s.pos += s.accel
	s.accel = (s.accel - s.pos*0.4) * 0.8
}
