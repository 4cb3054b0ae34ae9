// Package session is the cohesive loop behind every UI: it parses operator
// input, maps it onto game actions, executes them, and keeps the journal
// and the JSONL record in sync with what actually happened at the table.
package session

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/game"
	"github.com/brooksandrew/catan-spectator/internal/gamelog"
	"github.com/brooksandrew/catan-spectator/internal/parser"
	"github.com/brooksandrew/catan-spectator/internal/rules"
)

// Config assembles one live game session.
type Config struct {
	// Board drives the board builder; DataDirs feeds preset and variant
	// lookups.
	Board    board.Config
	DataDirs []string

	// Players defaults to the debug roster when empty.
	Players []game.Player

	// Variant names a house-rule file; empty plays the base game.
	Variant string

	// RecordPath is the JSONL record; empty keeps the game in memory only.
	// JournalPath is where the text journal lands on flush.
	RecordPath  string
	JournalPath string

	// SkipPregame starts play directly at the first turn.
	SkipPregame bool
	// Seed fixes the dev deck shuffle; zero means a time seed.
	Seed int64
}

// ParseRoster maps color:name entries, in seat order, onto players. An
// empty list means the caller falls back to the debug roster.
func ParseRoster(entries []string) ([]game.Player, error) {
	players := make([]game.Player, 0, len(entries))
	for i, entry := range entries {
		color, name, ok := strings.Cut(entry, ":")
		if !ok || color == "" || name == "" {
			return nil, fmt.Errorf("player %q: want color:name", entry)
		}
		p, err := game.NewPlayer(board.Seat(i+1), name, color)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// Session manages the loop of taking commands, executing them against the
// game, and persisting the outcome.
type Session struct {
	game     *game.Game
	recorder *gamelog.Recorder
	parser   *participle.Parser[parser.Command]
}

// NewSession bootstraps a game session pipeline from configuration.
func NewSession(cfg Config) (*Session, error) {
	loader := board.NewLoader(cfg.DataDirs)
	b, err := board.Build(cfg.Board, loader)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	var reg *rules.Registry
	if cfg.Variant == "" {
		reg, err = rules.Standard()
	} else {
		var v *rules.Variant
		v, err = rules.NewLoader(cfg.DataDirs).LoadVariant(cfg.Variant)
		if err != nil {
			return nil, fmt.Errorf("failed to load variant: %w", err)
		}
		reg, err = rules.NewRegistry(*v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}

	var store *gamelog.Store
	if cfg.RecordPath != "" {
		store, err = gamelog.NewStore(cfg.RecordPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open game record: %w", err)
		}
	}
	recorder := gamelog.NewRecorder(store, cfg.JournalPath)

	players := cfg.Players
	if len(players) == 0 {
		players = game.DebugPlayers()
	}

	g, err := game.NewGame(b, players, game.Options{
		SkipPregame: cfg.SkipPregame,
		Rules:       reg,
		Emitter:     recorder,
		Seed:        cfg.Seed,
	})
	if err != nil {
		recorder.Close()
		return nil, err
	}

	return &Session{
		game:     g,
		recorder: recorder,
		parser:   parser.Build(),
	}, nil
}

// Game exposes the live state machine for display layers.
func (s *Session) Game() *game.Game { return s.game }

// Journal exposes the text log for display layers.
func (s *Session) Journal() *gamelog.Journal { return s.recorder.Journal() }

// Close flushes the journal and closes the record.
func (s *Session) Close() error { return s.recorder.Close() }

// Execute takes a raw command string from a UI client, coordinates
// execution, and returns a printable response.
func (s *Session) Execute(input string) (string, error) {
	line := strings.ToLower(strings.TrimSpace(input))
	if line == "" {
		return "", nil
	}

	cmd, err := s.parser.ParseString("", line)
	if err != nil {
		return "", parser.MapError(line, err)
	}

	switch {
	case cmd.Start != nil:
		return s.executeStart()
	case cmd.Undo != nil:
		return s.executeUndo()
	case cmd.Redo != nil:
		return s.executeRedo()
	}

	action, err := s.actionFor(cmd)
	if err != nil {
		return "", err
	}
	commit, err := s.game.Apply(action)
	if err != nil {
		return "", err
	}
	if err := s.recorder.Err(); err != nil {
		return "", err
	}
	return s.describe(commit), nil
}

func (s *Session) executeStart() (string, error) {
	if err := s.game.Start(); err != nil {
		return "", err
	}
	if err := s.recorder.Err(); err != nil {
		return "", err
	}
	cur := s.game.CurrentPlayer()
	if s.game.Phase() == game.PhasePregameSettlement {
		return fmt.Sprintf("game started, %s places a settlement", cur.Color), nil
	}
	return fmt.Sprintf("game started, %s rolls", cur.Color), nil
}

func (s *Session) executeUndo() (string, error) {
	action, err := s.game.Undo()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("undid %s", action.Kind()), nil
}

func (s *Session) executeRedo() (string, error) {
	commit, err := s.game.Redo()
	if err != nil {
		return "", err
	}
	return s.describe(commit), nil
}

// describe renders a commit for the console: the journal line when there
// is one, a prompt for what comes next otherwise.
func (s *Session) describe(c game.Commit) string {
	if lines := s.recorder.Journal().Tail(); len(lines) > 0 {
		return strings.Join(lines, "; ")
	}
	switch s.game.Phase() {
	case game.PhaseMoveRobber:
		return fmt.Sprintf("%s moves the robber", c.Actor.Color)
	case game.PhaseSteal:
		return fmt.Sprintf("%s picks a victim", c.Actor.Color)
	}
	return fmt.Sprintf("%s %s", c.Actor.Color, c.Action.Kind())
}
