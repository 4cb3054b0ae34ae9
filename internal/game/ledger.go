package game

import (
	"fmt"

	"github.com/brooksandrew/catan-spectator/internal/board"
)

// Ledger tracks per-player hands, remaining piece inventories, and held dev
// cards. Every mutation either fully applies or fully fails; there is no
// partial application.
type Ledger struct {
	hands     map[board.Seat]Hand
	inventory map[board.Seat]map[board.PieceKind]int
	devCards  map[board.Seat]map[DevCard]int
}

// NewLedger seeds empty hands and full piece inventories for each seat.
func NewLedger(seats []board.Seat) *Ledger {
	l := &Ledger{
		hands:     make(map[board.Seat]Hand),
		inventory: make(map[board.Seat]map[board.PieceKind]int),
		devCards:  make(map[board.Seat]map[DevCard]int),
	}
	for _, s := range seats {
		l.hands[s] = make(Hand)
		l.devCards[s] = make(map[DevCard]int)
		inv := make(map[board.PieceKind]int, len(PieceLimits))
		for kind, limit := range PieceLimits {
			inv[kind] = limit
		}
		l.inventory[s] = inv
	}
	return l
}

// Hand returns a copy of the seat's resource hand.
func (l *Ledger) Hand(s board.Seat) Hand {
	return l.hands[s].Clone()
}

// HandSize returns the seat's total card count.
func (l *Ledger) HandSize(s board.Seat) int {
	return l.hands[s].Total()
}

// AddResources credits cards to a hand.
func (l *Ledger) AddResources(s board.Seat, cards Hand) {
	h := l.hands[s]
	for r, c := range cards {
		h[r] += c
	}
}

// RemoveResources debits cards from a hand, all or nothing.
func (l *Ledger) RemoveResources(s board.Seat, cards Hand) error {
	h := l.hands[s]
	if !h.Covers(cards) {
		return fmt.Errorf("seat %d needs %s: %w", s, cards, ErrInsufficientResources)
	}
	for r, c := range cards {
		h[r] -= c
		if h[r] == 0 {
			delete(h, r)
		}
	}
	return nil
}

// Remaining returns how many pieces of kind the seat still has in supply.
func (l *Ledger) Remaining(s board.Seat, kind board.PieceKind) int {
	return l.inventory[s][kind]
}

// DecrementInventory consumes one piece from the seat's supply.
func (l *Ledger) DecrementInventory(s board.Seat, kind board.PieceKind) error {
	if l.inventory[s][kind] <= 0 {
		return fmt.Errorf("seat %d out of %ss: %w", s, kind, ErrNoPiecesRemaining)
	}
	l.inventory[s][kind]--
	return nil
}

// IncrementInventory returns one piece to the seat's supply. It is the
// exact inverse of DecrementInventory; exceeding the fixed limit means the
// undo history and the ledger disagree, which is a defect, not a game
// condition.
func (l *Ledger) IncrementInventory(s board.Seat, kind board.PieceKind) error {
	if l.inventory[s][kind] >= PieceLimits[kind] {
		return fmt.Errorf("seat %d %s inventory already full: history and ledger disagree", s, kind)
	}
	l.inventory[s][kind]++
	return nil
}

// DevCount returns how many cards of kind the seat holds.
func (l *Ledger) DevCount(s board.Seat, card DevCard) int {
	return l.devCards[s][card]
}

// DevTotal returns the seat's total dev card count.
func (l *Ledger) DevTotal(s board.Seat) int {
	n := 0
	for _, c := range l.devCards[s] {
		n += c
	}
	return n
}

// GainDevCard credits one dev card.
func (l *Ledger) GainDevCard(s board.Seat, card DevCard) {
	l.devCards[s][card]++
}

// SpendDevCard debits one dev card.
func (l *Ledger) SpendDevCard(s board.Seat, card DevCard) error {
	if l.devCards[s][card] <= 0 {
		return fmt.Errorf("seat %d holds no %s: %w", s, card, ErrInsufficientResources)
	}
	l.devCards[s][card]--
	return nil
}
