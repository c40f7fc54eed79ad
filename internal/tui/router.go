package tui

type ScreenStack struct {
	items []Screen
}

func (s *ScreenStack) Push(screen Screen) {
	if screen == nil {
		return
	}
	s.items = append(s.items, screen)
}

func (s *ScreenStack) Pop() Screen {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s ScreenStack) Len() int {
	return len(s.items)
}

// Find returns the index of the live screen with the given id, or -1.
func (s ScreenStack) Find(id uint64) int {
	for i, screen := range s.items {
		if screen.ID() == id {
			return i
		}
	}
	return -1
}

// Replace swaps the screen at index i. Nil is ignored.
func (s *ScreenStack) Replace(i int, screen Screen) {
	if screen == nil || i < 0 || i >= len(s.items) {
		return
	}
	s.items[i] = screen
}

func (s ScreenStack) All() []Screen {
	return s.items
}
