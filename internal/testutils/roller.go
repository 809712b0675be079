package testutils

import (
	"fmt"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller is a toolkit dice.Roller that returns a fixed sequence of
// faces so tests can pin every roll of a chain
type ScriptedRoller struct {
	mu    sync.Mutex
	faces []int
	calls []int
}

var _ toolkitdice.Roller = (*ScriptedRoller)(nil)

// NewScriptedRoller creates a roller that yields faces in order
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces}
}

// Push appends faces to the script
func (s *ScriptedRoller) Push(faces ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces = append(s.faces, faces...)
}

// Roll returns the next scripted face
func (s *ScriptedRoller) Roll(size int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next(size)
}

// RollN returns the next count scripted faces
func (s *ScriptedRoller) RollN(count, size int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		face, err := s.next(size)
		if err != nil {
			return nil, err
		}
		out = append(out, face)
	}
	return out, nil
}

// Remaining returns how many scripted faces are left
func (s *ScriptedRoller) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.faces)
}

// Sizes returns the die sizes requested so far, one per face
func (s *ScriptedRoller) Sizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.calls...)
}

func (s *ScriptedRoller) next(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("scripted roller: invalid die size %d", size)
	}
	if len(s.faces) == 0 {
		return 0, fmt.Errorf("scripted roller: script exhausted rolling d%d", size)
	}
	face := s.faces[0]
	if face < 1 || face > size {
		return 0, fmt.Errorf("scripted roller: face %d does not fit d%d", face, size)
	}
	s.faces = s.faces[1:]
	s.calls = append(s.calls, size)
	return face, nil
}

// FixedRoller always returns the same face, clamped to the die size
type FixedRoller struct {
	Face int
}

// Roll returns the fixed face
func (f FixedRoller) Roll(size int) (int, error) {
	if f.Face > size {
		return size, nil
	}
	return f.Face, nil
}

// RollN returns count copies of the fixed face
func (f FixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = f.Roll(size)
	}
	return out, nil
}
