package gamelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/brooksandrew/catan-spectator/internal/game"
)

// Record types in the JSONL store.
const (
	recordStart   = "start"
	recordAction  = "action"
	recordRetract = "retract"
)

// recordWrapper facilitates serialization of polymorphic records.
type recordWrapper struct {
	Type string          `json:"type"`
	Kind game.ActionKind `json:"kind,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Step is one replayable entry: either a committed action or a retraction
// of the previous one.
type Step struct {
	Retract bool
	Action  game.Action
}

// Store handles append-only storing of the game record as JSONL. Every
// append is synced so a crash mid-game loses at most the line being
// written.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &Store{file: file}, nil
}

// AppendStart records the game header.
func (s *Store) AppendStart(info game.StartInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.appendLine(recordWrapper{Type: recordStart, Data: data})
}

// AppendAction records one committed action.
func (s *Store) AppendAction(a game.Action) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.appendLine(recordWrapper{Type: recordAction, Kind: a.Kind(), Data: data})
}

// AppendRetract records that the previous unretracted action was undone.
func (s *Store) AppendRetract() error {
	return s.appendLine(recordWrapper{Type: recordRetract})
}

func (s *Store) appendLine(w recordWrapper) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load replays all JSONL lines back into the header and the step list.
func (s *Store) Load() (*game.StartInfo, []Step, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, nil, err
	}

	var start *game.StartInfo
	var steps []Step

	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		var wrapper recordWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return nil, nil, fmt.Errorf("failed to decode record: %w", err)
		}

		switch wrapper.Type {
		case recordStart:
			var info game.StartInfo
			if err := json.Unmarshal(wrapper.Data, &info); err != nil {
				return nil, nil, fmt.Errorf("failed to decode start record: %w", err)
			}
			start = &info
		case recordRetract:
			steps = append(steps, Step{Retract: true})
		case recordAction:
			a, err := decodeAction(wrapper.Kind, wrapper.Data)
			if err != nil {
				return nil, nil, err
			}
			steps = append(steps, Step{Action: a})
		default:
			return nil, nil, fmt.Errorf("unknown record type in log: %s", wrapper.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return start, steps, nil
}

func decodeAction(kind game.ActionKind, data json.RawMessage) (game.Action, error) {
	var a game.Action
	switch kind {
	case game.KindPlaceSettlement:
		a = &game.PlaceSettlement{}
	case game.KindPlaceCity:
		a = &game.PlaceCity{}
	case game.KindPlaceRoad:
		a = &game.PlaceRoad{}
	case game.KindRollDice:
		a = &game.RollDice{}
	case game.KindDiscard:
		a = &game.Discard{}
	case game.KindMoveRobber:
		a = &game.MoveRobber{}
	case game.KindSteal:
		a = &game.Steal{}
	case game.KindTradePort:
		a = &game.TradePort{}
	case game.KindTradePlayer:
		a = &game.TradePlayer{}
	case game.KindBuyDevCard:
		a = &game.BuyDevCard{}
	case game.KindPlayKnight:
		a = &game.PlayKnight{}
	case game.KindPlayMonopoly:
		a = &game.PlayMonopoly{}
	case game.KindPlayYearOfPlenty:
		a = &game.PlayYearOfPlenty{}
	case game.KindPlayRoadBuilder:
		a = &game.PlayRoadBuilder{}
	case game.KindPlayVictoryPoint:
		a = &game.PlayVictoryPoint{}
	case game.KindEndTurn:
		a = &game.EndTurn{}
	case game.KindEndGame:
		a = &game.EndGame{}
	default:
		return nil, fmt.Errorf("unknown action kind in log: %s", kind)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("failed to parse %s record: %w", kind, err)
	}
	return deref(a), nil
}

// deref returns the value an action pointer decodes into; actions travel by
// value everywhere else.
func deref(a game.Action) game.Action {
	switch v := a.(type) {
	case *game.PlaceSettlement:
		return *v
	case *game.PlaceCity:
		return *v
	case *game.PlaceRoad:
		return *v
	case *game.RollDice:
		return *v
	case *game.Steal:
		return *v
	case *game.Discard:
		return *v
	case *game.MoveRobber:
		return *v
	case *game.TradePort:
		return *v
	case *game.TradePlayer:
		return *v
	case *game.BuyDevCard:
		return *v
	case *game.PlayKnight:
		return *v
	case *game.PlayMonopoly:
		return *v
	case *game.PlayYearOfPlenty:
		return *v
	case *game.PlayRoadBuilder:
		return *v
	case *game.PlayVictoryPoint:
		return *v
	case *game.EndTurn:
		return *v
	case *game.EndGame:
		return *v
	}
	return a
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
