package deck

import (
	"fmt"
	"sort"
)

// Stack is an ordered holder of cards. Index 0 is the first card added; the
// last element is the top. It is only mutated from the frame loop.
type Stack struct {
	index int
	board *Board
	cards []*Card
}

// NewStack creates an empty stack at the given index.
func NewStack(index int, board *Board) *Stack {
	return &Stack{index: index, board: board}
}

// Index returns the stack's position in the row.
func (s *Stack) Index() int { return s.index }

// Add appends c as the new top and relayouts every member. Adding a card that
// another stack still holds is a logic error and panics.
func (s *Stack) Add(c *Card) {
	if c.holder != nil {
		panic(fmt.Sprintf("deck: card %d already held by stack %d", c.id, c.holder.index))
	}
	c.holder = s
	s.cards = append(s.cards, c)
	s.Relayout()
}

// Remove takes c out of the stack. Absent cards are ignored. It reports
// whether c was removed.
func (s *Stack) Remove(c *Card) bool {
	for i, m := range s.cards {
		if m != c {
			continue
		}
		s.cards = append(s.cards[:i], s.cards[i+1:]...)
		c.holder = nil
		c.lifted = true
		s.Relayout()
		return true
	}
	return false
}

// Top returns the last card, or false when the stack is empty.
func (s *Stack) Top() (*Card, bool) {
	if len(s.cards) == 0 {
		return nil, false
	}
	return s.cards[len(s.cards)-1], true
}

// Count returns the number of members.
func (s *Stack) Count() int { return len(s.cards) }

// IsEmpty reports whether the stack has no members.
func (s *Stack) IsEmpty() bool { return len(s.cards) == 0 }

// Cards returns a copy of the member list in stacking order.
func (s *Stack) Cards() []*Card {
	out := make([]*Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Relayout recomputes rest poses for settled members against the live
// viewport. Members in flight keep their snapshot.
func (s *Stack) Relayout() {
	total := len(s.cards)
	for i, c := range s.cards {
		c.settle(Placement{Stack: s.index, Slot: i, Total: total})
	}
}

// Distribute deals cards across stacks: every stack gets len(cards)/len(stacks)
// and the first len(cards)%len(stacks) stacks get one more.
func Distribute(stacks []*Stack, cards []*Card) {
	if len(stacks) == 0 {
		return
	}
	per := len(cards) / len(stacks)
	extra := len(cards) % len(stacks)
	next := 0
	for i, s := range stacks {
		n := per
		if i < extra {
			n++
		}
		for iter := 0; iter < n; iter++ {
			s.Add(cards[next])
			next++
		}
	}
}

// Audit verifies that every card is held exactly once across stacks and that
// the total matches want.
func Audit(stacks []*Stack, want int) error {
	seen := make(map[int]int, want)
	total := 0
	for _, s := range stacks {
		for _, c := range s.cards {
			if prev, dup := seen[c.id]; dup {
				return fmt.Errorf("card %d in stacks %d and %d", c.id, prev, s.index)
			}
			if c.holder != s {
				return fmt.Errorf("card %d listed in stack %d but held by another", c.id, s.index)
			}
			seen[c.id] = s.index
			total++
		}
	}
	if total != want {
		return fmt.Errorf("expected %d cards across stacks, found %d", want, total)
	}
	return nil
}

// Counts returns member counts per stack.
func Counts(stacks []*Stack) []int {
	out := make([]int, len(stacks))
	for i, s := range stacks {
		out[i] = s.Count()
	}
	return out
}

// ByDepth orders cards for drawing, farthest first. Z counts down toward the
// viewer, so a stack's top card (Z = 1) is drawn last.
func ByDepth(cards []*Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].pose.Z > cards[j].pose.Z
	})
}
