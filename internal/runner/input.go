package runner

// Key is one of the held movement inputs.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyJump
)

// Input is the held state of the movement keys.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}

// Mask packs the input into a byte for run traces.
func (in Input) Mask() uint8 {
	var m uint8
	if in.Left {
		m |= 1
	}
	if in.Right {
		m |= 2
	}
	if in.Jump {
		m |= 4
	}
	return m
}

// InputFromMask is the inverse of Input.Mask.
func InputFromMask(m uint8) Input {
	return Input{
		Left:  m&1 != 0,
		Right: m&2 != 0,
		Jump:  m&4 != 0,
	}
}

// KeyDown marks a key as held.
func (s *Session) KeyDown(k Key) {
	s.setKey(k, true)
}

// KeyUp marks a key as released.
func (s *Session) KeyUp(k Key) {
	s.setKey(k, false)
}

// SetInput replaces the held state of all keys.
func (s *Session) SetInput(in Input) {
	s.input = in
}

// Input returns the currently held keys.
func (s *Session) Input() Input {
	return s.input
}

func (s *Session) setKey(k Key, down bool) {
	switch k {
	case KeyLeft:
		s.input.Left = down
	case KeyRight:
		s.input.Right = down
	case KeyJump:
		s.input.Jump = down
	}
}
