// Package cubes tracks disease cubes per color.
package cubes

import "github.com/hotzone/hotzone-server-go/internal/game/board"

// MaxPerCity is the most cubes of one color a city may hold.
const MaxPerCity = 3

// SupplyPerColor is the number of cubes of each color in the box.
const SupplyPerColor = 16

// Set counts cubes by color. The zero value is empty and ready to read;
// use New before writing.
type Set map[board.Color]int

// New creates an empty set with an entry for every color.
func New() Set {
	s := make(Set, len(board.Colors))
	for _, c := range board.Colors {
		s[c] = 0
	}
	return s
}

// Full creates a set holding n cubes of every color.
func Full(n int) Set {
	s := New()
	for _, c := range board.Colors {
		s[c] = n
	}
	return s
}

// Get returns the number of cubes of the color.
func (s Set) Get(c board.Color) int {
	return s[c]
}

// Add adds amount cubes of the color. Negative amounts are ignored.
func (s Set) Add(c board.Color, amount int) {
	if amount > 0 {
		s[c] += amount
	}
}

// Remove takes up to amount cubes of the color and returns how many were taken.
// The count never drops below zero.
func (s Set) Remove(c board.Color, amount int) int {
	if amount <= 0 {
		return 0
	}
	if s[c] < amount {
		amount = s[c]
	}
	if amount <= 0 {
		return 0
	}
	s[c] -= amount
	return amount
}

// Adjust applies a signed delta without clamping and returns the new count.
// Supply counters use it because a negative supply signals depletion.
func (s Set) Adjust(c board.Color, delta int) int {
	s[c] += delta
	return s[c]
}

// Total returns the number of cubes across all colors.
func (s Set) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Present returns the colors with at least one cube, in enumeration order.
func (s Set) Present() []board.Color {
	var out []board.Color
	for _, c := range board.Colors {
		if s[c] > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Most returns the color with the most cubes. Ties go to the earlier color
// in enumeration order. ok is false when the set is empty.
func (s Set) Most() (best board.Color, ok bool) {
	for _, c := range s.Present() {
		if !ok || s[c] > s[best] {
			best, ok = c, true
		}
	}
	return best, ok
}

// Clone creates a deep copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for c, n := range s {
		out[c] = n
	}
	return out
}

// Fill ensures every color has an entry, leaving existing counts untouched.
// Counts absent from a loaded save are set to def.
func (s Set) Fill(def int) Set {
	if s == nil {
		s = make(Set, len(board.Colors))
	}
	for _, c := range board.Colors {
		if _, ok := s[c]; !ok {
			s[c] = def
		}
	}
	return s
}
