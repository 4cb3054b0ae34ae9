// Package game owns the turn/phase state machine: it validates proposed
// actions against the rules and the board, mutates shared game state exactly
// once per accepted action, and keeps the full command history so any
// committed action can be undone and redone.
package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brooksandrew/catan-spectator/internal/board"
)

// Resource is a tradeable resource card kind.
type Resource string

const (
	ResWood  Resource = "wood"
	ResBrick Resource = "brick"
	ResWheat Resource = "wheat"
	ResSheep Resource = "sheep"
	ResOre   Resource = "ore"
)

// Resources lists all resource kinds in a stable order.
var Resources = []Resource{ResWood, ResBrick, ResWheat, ResSheep, ResOre}

// ParseResource validates a resource name.
func ParseResource(s string) (Resource, bool) {
	for _, r := range Resources {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// ResourceOf maps a terrain kind to the resource it yields. The desert
// yields nothing.
func ResourceOf(t board.Terrain) (Resource, bool) {
	switch t {
	case board.Wood:
		return ResWood, true
	case board.Brick:
		return ResBrick, true
	case board.Wheat:
		return ResWheat, true
	case board.Sheep:
		return ResSheep, true
	case board.Ore:
		return ResOre, true
	}
	return "", false
}

// Hand is a multiset of resource cards. A Hand used as a cost or transfer
// amount never carries negative counts.
type Hand map[Resource]int

// Total sums all card counts.
func (h Hand) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Clone copies the hand, dropping zero entries.
func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	for r, c := range h {
		if c != 0 {
			out[r] = c
		}
	}
	return out
}

// Covers reports whether h holds at least the cards in cost.
func (h Hand) Covers(cost Hand) bool {
	for r, c := range cost {
		if h[r] < c {
			return false
		}
	}
	return true
}

// String renders the hand in catanlog list form: [2 wood,1 ore].
func (h Hand) String() string {
	var parts []string
	for _, r := range Resources {
		if c := h[r]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, r))
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// sortedCards expands the hand into one entry per card, in stable resource
// order. Used when a random card must be picked from a hand.
func (h Hand) sortedCards() []Resource {
	var cards []Resource
	for _, r := range Resources {
		for i := 0; i < h[r]; i++ {
			cards = append(cards, r)
		}
	}
	return cards
}

// Build costs.
var (
	RoadCost       = Hand{ResWood: 1, ResBrick: 1}
	SettlementCost = Hand{ResWood: 1, ResBrick: 1, ResWheat: 1, ResSheep: 1}
	CityCost       = Hand{ResWheat: 2, ResOre: 3}
	DevCardCost    = Hand{ResWheat: 1, ResSheep: 1, ResOre: 1}
)

// PieceLimits fixes each player's total supply per piece kind.
var PieceLimits = map[board.PieceKind]int{
	board.Settlement: 5,
	board.City:       4,
	board.Road:       15,
}

// DevCard is a development card kind.
type DevCard string

const (
	DevKnight       DevCard = "knight"
	DevMonopoly     DevCard = "monopoly"
	DevYearOfPlenty DevCard = "year of plenty"
	DevRoadBuilder  DevCard = "road builder"
	DevVictoryPoint DevCard = "victory point"
)

// devDeckComposition is the standard 25-card deck.
var devDeckComposition = map[DevCard]int{
	DevKnight:       14,
	DevVictoryPoint: 5,
	DevMonopoly:     2,
	DevYearOfPlenty: 2,
	DevRoadBuilder:  2,
}

// Player is one seated player. Name and color are lowercased with spaces
// removed so log lines stay machine-parsable.
type Player struct {
	Seat  board.Seat
	Name  string
	Color string
}

// NewPlayer normalizes and validates a player entry.
func NewPlayer(seat board.Seat, name, color string) (Player, error) {
	if seat < 1 || seat > 4 {
		return Player{}, fmt.Errorf("seat must be on [1,4], got %d", seat)
	}
	normalize := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), " ", "")
	}
	return Player{Seat: seat, Name: normalize(name), Color: normalize(color)}, nil
}

func (p Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Color, p.Name)
}

// DebugPlayers is the fixed roster used by debug board setups.
func DebugPlayers() []Player {
	return []Player{
		{Seat: 1, Name: "yurick", Color: "green"},
		{Seat: 2, Name: "josh", Color: "blue"},
		{Seat: 3, Name: "zach", Color: "orange"},
		{Seat: 4, Name: "ross", Color: "red"},
	}
}

// seatsOf lists the seats of a roster in order.
func seatsOf(players []Player) []board.Seat {
	seats := make([]board.Seat, len(players))
	for i, p := range players {
		seats[i] = p.Seat
	}
	return seats
}

// sortPlayers orders a roster by seat.
func sortPlayers(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}
