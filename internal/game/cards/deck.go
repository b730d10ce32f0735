package cards

import "math/rand/v2"

// Deck is a double-ended pile. The last element is the top of the deck;
// index 0 is the bottom.
type Deck []Card

// NewDeck creates a deck from cards, the last card on top.
func NewDeck(cards ...Card) Deck {
	d := make(Deck, len(cards))
	copy(d, cards)
	return d
}

// Len returns the number of cards in the deck.
func (d Deck) Len() int {
	return len(d)
}

// Push puts a card on top.
func (d *Deck) Push(c Card) {
	*d = append(*d, c)
}

// DrawTop removes and returns the top card.
func (d *Deck) DrawTop() (Card, bool) {
	n := len(*d)
	if n == 0 {
		return Card{}, false
	}
	c := (*d)[n-1]
	*d = (*d)[:n-1]
	return c, true
}

// DrawBottom removes and returns the bottom card.
func (d *Deck) DrawBottom() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	c := (*d)[0]
	*d = (*d)[1:]
	return c, true
}

// PlaceOnTop stacks cards on top of the deck; the last card given ends up on top.
func (d *Deck) PlaceOnTop(cards ...Card) {
	*d = append(*d, cards...)
}

// TakeAll empties the deck and returns its cards bottom first.
func (d *Deck) TakeAll() []Card {
	out := make([]Card, len(*d))
	copy(out, *d)
	*d = (*d)[:0]
	return out
}

// Shuffle randomizes the deck order.
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Peek returns the top n cards without removing them, top first.
func (d Deck) Peek(n int) []Card {
	if n > len(d) {
		n = len(d)
	}
	out := make([]Card, 0, n)
	for i := len(d) - 1; i >= len(d)-n; i-- {
		out = append(out, d[i])
	}
	return out
}

// Count returns how many cards of the kind the deck holds.
func (d Deck) Count(kind Kind) int {
	n := 0
	for _, c := range d {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (d Deck) Clone() Deck {
	if d == nil {
		return nil
	}
	return NewDeck(d...)
}
