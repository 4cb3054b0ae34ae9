package session

import (
	"fmt"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/game"
	"github.com/brooksandrew/catan-spectator/internal/parser"
)

// actionFor maps a parsed console command onto a game action. Only shape
// problems are rejected here (unknown colors, malformed lists); legality
// is the validator's job.
func (s *Session) actionFor(cmd *parser.Command) (game.Action, error) {
	switch {
	case cmd.Roll != nil:
		seat, err := s.seatFor(cmd.Roll.Actor)
		if err != nil {
			return nil, err
		}
		switch len(cmd.Roll.Dice) {
		case 0:
			return game.RollDice{Seat: seat}, nil
		case 2:
			return game.RollDice{Seat: seat, Die1: cmd.Roll.Dice[0], Die2: cmd.Roll.Dice[1]}, nil
		}
		return nil, fmt.Errorf("roll takes no dice or exactly two, got %d", len(cmd.Roll.Dice))

	case cmd.Build != nil:
		seat, err := s.seatFor(cmd.Build.Actor)
		if err != nil {
			return nil, err
		}
		switch cmd.Build.Piece {
		case "settlement":
			return game.PlaceSettlement{Seat: seat, Node: board.Node(cmd.Build.Loc)}, nil
		case "city":
			return game.PlaceCity{Seat: seat, Node: board.Node(cmd.Build.Loc)}, nil
		case "road":
			return game.PlaceRoad{Seat: seat, Edge: board.Edge(cmd.Build.Loc)}, nil
		}
		return nil, fmt.Errorf("unknown piece %q", cmd.Build.Piece)

	case cmd.Discard != nil:
		seat, err := s.seatFor(cmd.Discard.Actor)
		if err != nil {
			return nil, err
		}
		cards, err := handFor(cmd.Discard.Cards)
		if err != nil {
			return nil, err
		}
		return game.Discard{Seat: seat, Cards: cards}, nil

	case cmd.Robber != nil:
		seat, err := s.seatFor(cmd.Robber.Actor)
		if err != nil {
			return nil, err
		}
		return game.MoveRobber{Seat: seat, Tile: board.Tile(cmd.Robber.Tile)}, nil

	case cmd.Steal != nil:
		seat, err := s.seatFor(cmd.Steal.Actor)
		if err != nil {
			return nil, err
		}
		if cmd.Steal.Victim == "none" {
			return game.Steal{Seat: seat}, nil
		}
		victim, err := s.seatFor(cmd.Steal.Victim)
		if err != nil {
			return nil, err
		}
		return game.Steal{Seat: seat, Victim: victim}, nil

	case cmd.Trade != nil:
		return s.tradeFor(cmd.Trade)

	case cmd.Buy != nil:
		seat, err := s.seatFor(cmd.Buy.Actor)
		if err != nil {
			return nil, err
		}
		return game.BuyDevCard{Seat: seat}, nil

	case cmd.Play != nil:
		return s.playFor(cmd.Play)

	case cmd.End != nil:
		seat, err := s.seatFor(cmd.End.Actor)
		if err != nil {
			return nil, err
		}
		if cmd.End.What == "game" {
			return game.EndGame{Seat: seat}, nil
		}
		return game.EndTurn{Seat: seat}, nil
	}
	return nil, fmt.Errorf("I wasn't able to understand your command")
}

func (s *Session) tradeFor(t *parser.TradeCmd) (game.Action, error) {
	seat, err := s.seatFor(t.Actor)
	if err != nil {
		return nil, err
	}
	give, err := handFor(t.Give)
	if err != nil {
		return nil, err
	}
	get, err := handFor(t.Get)
	if err != nil {
		return nil, err
	}

	if t.Partner != nil {
		partner, err := s.seatFor(*t.Partner)
		if err != nil {
			return nil, err
		}
		return game.TradePlayer{Seat: seat, Partner: partner, Give: give, Get: get}, nil
	}

	kind := board.PortAny4
	if t.Port != nil {
		kind, err = portFor(*t.Port)
		if err != nil {
			return nil, err
		}
	}
	return game.TradePort{Seat: seat, Give: give, Get: get, Port: kind}, nil
}

func (s *Session) playFor(p *parser.PlayCmd) (game.Action, error) {
	seat, err := s.seatFor(p.Actor)
	if err != nil {
		return nil, err
	}
	switch {
	case p.Knight:
		return game.PlayKnight{Seat: seat}, nil
	case p.Monopoly != nil:
		r, ok := game.ParseResource(p.Monopoly.Resource)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", p.Monopoly.Resource)
		}
		return game.PlayMonopoly{Seat: seat, Resource: r}, nil
	case p.Plenty != nil:
		first, ok := game.ParseResource(p.Plenty.First)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", p.Plenty.First)
		}
		second, ok := game.ParseResource(p.Plenty.Second)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", p.Plenty.Second)
		}
		return game.PlayYearOfPlenty{Seat: seat, First: first, Second: second}, nil
	case p.Roads != nil:
		return game.PlayRoadBuilder{Seat: seat, EdgeA: board.Edge(p.Roads.A), EdgeB: board.Edge(p.Roads.B)}, nil
	case p.Point:
		return game.PlayVictoryPoint{Seat: seat}, nil
	}
	return nil, fmt.Errorf("unknown dev card")
}

// seatFor resolves a color to a seat; an empty color means the current
// player.
func (s *Session) seatFor(color string) (board.Seat, error) {
	if color == "" {
		return s.game.CurrentPlayer().Seat, nil
	}
	p, ok := s.game.PlayerByColor(color)
	if !ok {
		return 0, fmt.Errorf("no player with color %q", color)
	}
	return p.Seat, nil
}

func handFor(pairs []*parser.ResourcePair) (game.Hand, error) {
	h := make(game.Hand)
	for _, pair := range pairs {
		r, ok := game.ParseResource(pair.Resource)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", pair.Resource)
		}
		h[r] += pair.Count
	}
	return h, nil
}

func portFor(name string) (board.PortKind, error) {
	switch board.PortKind(name) {
	case board.PortAny4, board.PortAny3, board.PortWood, board.PortBrick,
		board.PortWheat, board.PortSheep, board.PortOre:
		return board.PortKind(name), nil
	}
	return "", fmt.Errorf("unknown port %q", name)
}
