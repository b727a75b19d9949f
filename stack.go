package gfx

// Stack is a save/restore stack for one kind of bound GPU state.
//
// The top of a stack always reflects what is bound in the driver: Push binds
// the new value and Pop rebinds the value below it. When Pop empties the
// stack the kind's empty callback runs instead; a nil callback leaves the
// driver state untouched.
//
// A Stack is not safe for concurrent use.
type Stack[T any] struct {
	kind  string
	items []T
	bind  func(T)
	empty func()
}

// NewStack returns an empty stack that calls bind whenever its top changes
// and empty when its last item is popped.
func NewStack[T any](kind string, bind func(T), empty func()) *Stack[T] {
	return &Stack[T]{
		kind:  kind,
		items: make([]T, 0, 8),
		bind:  bind,
		empty: empty,
	}
}

// Push makes v the current binding.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
	s.bind(v)
}

// Pop restores the binding that was current before the matching Push.
// Popping an empty stack is logged and otherwise ignored.
func (s *Stack[T]) Pop() {
	n := len(s.items)
	if n == 0 {
		Logger().Warn("gfx: pop on empty state stack", "kind", s.kind)
		return
	}
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	if n > 1 {
		s.bind(s.items[n-2])
		return
	}
	if s.empty != nil {
		s.empty()
	}
}

// Current returns the top of the stack and whether the stack is non-empty.
func (s *Stack[T]) Current() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the stack depth.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Kind returns the name of the state kind the stack manages.
func (s *Stack[T]) Kind() string {
	return s.kind
}
