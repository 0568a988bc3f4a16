package stack

import (
	"slices"
	"testing"
)

func TestStack_PushAndPop(t *testing.T) {
	s := New[int]()

	if !s.IsEmpty() {
		t.Error("New() stack should be empty")
	}

	s.Push(1, 2)
	s.Push(3)

	if s.Size() != 3 {
		t.Errorf("Push() stack size = %d, want 3", s.Size())
	}

	for _, want := range []int{3, 2, 1} {
		val, ok := s.Pop()
		if !ok || val != want {
			t.Errorf("Pop() = %d, %t, want %d, true", val, ok, want)
		}
	}

	val, ok := s.Pop()
	if ok || val != 0 {
		t.Errorf("Pop() from empty stack = %d, %t, want 0, false", val, ok)
	}
}

func TestStack_Peek(t *testing.T) {
	s := NewWithCapacity[string](2)

	if val, ok := s.Peek(); ok || val != "" {
		t.Errorf("Peek() on empty stack = %q, %t, want \"\", false", val, ok)
	}

	s.Push("first", "second")

	val, ok := s.Peek()
	if !ok || val != "second" {
		t.Errorf("Peek() = %q, %t, want \"second\", true", val, ok)
	}
	if s.Size() != 2 {
		t.Errorf("Peek() changed size to %d", s.Size())
	}
}

func TestStack_PopTo(t *testing.T) {
	s := New[rune]()
	s.Push('{', '(', '[', '(')

	got, ok := s.PopTo(func(r rune) bool { return r == '[' })
	if !ok || got != '[' {
		t.Fatalf("PopTo('[') = %q, %t", got, ok)
	}
	if !slices.Equal(s.ToSlice(), []rune{'{', '('}) {
		t.Fatalf("remaining = %q", s.ToSlice())
	}

	if _, ok := s.PopTo(func(r rune) bool { return r == '<' }); ok {
		t.Fatal("PopTo() matched a missing element")
	}
	if s.Size() != 2 {
		t.Fatalf("PopTo() without match changed size to %d", s.Size())
	}
}

func TestStack_LastIndex(t *testing.T) {
	s := New[int]()
	s.Push(5, 7, 5, 9)

	if got := s.LastIndex(func(v int) bool { return v == 5 }); got != 2 {
		t.Fatalf("LastIndex(5) = %d, want 2", got)
	}
	if got := s.LastIndex(func(v int) bool { return v == 1 }); got != -1 {
		t.Fatalf("LastIndex(1) = %d, want -1", got)
	}
}

func TestStack_ToSliceIsCopy(t *testing.T) {
	s := New[int]()
	s.Push(1, 2, 3)

	items := s.ToSlice()
	items[0] = 100

	if first := s.ToSlice()[0]; first != 1 {
		t.Fatalf("ToSlice() aliases stack storage, first = %d", first)
	}
}
