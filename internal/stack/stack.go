package stack

import (
	"slices"
)

type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// NewWithCapacity reduces allocations when approximate stack size is known.
func NewWithCapacity[T any](capacity int) *Stack[T] {
	return &Stack[T]{
		items: make([]T, 0, capacity),
	}
}

// Push adds elements in order with the last element at the top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	index := len(s.items) - 1
	item := s.items[index]
	s.items = s.items[:index]
	return item, true
}

func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	return s.items[len(s.items)-1], true
}

// LastIndex returns the position from the bottom of the topmost element
// satisfying match, or -1.
func (s *Stack[T]) LastIndex(match func(T) bool) int {
	for index := len(s.items) - 1; index >= 0; index-- {
		if match(s.items[index]) {
			return index
		}
	}
	return -1
}

// PopTo removes elements down to and including the topmost one satisfying
// match and returns it. The stack is left untouched when nothing matches.
func (s *Stack[T]) PopTo(match func(T) bool) (T, bool) {
	index := s.LastIndex(match)
	if index < 0 {
		var zero T
		return zero, false
	}

	item := s.items[index]
	s.items = s.items[:index]
	return item, true
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Size() int {
	return len(s.items)
}

// ToSlice orders from bottom to top of the stack.
func (s *Stack[T]) ToSlice() []T {
	return slices.Clone(s.items)
}
