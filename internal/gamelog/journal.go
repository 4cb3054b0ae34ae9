// Package gamelog turns committed actions into the durable game record: a
// human-readable text journal and an append-only JSONL store the game can
// be replayed from.
package gamelog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/game"
)

// FormatVersion is stamped into the journal header.
const FormatVersion = "catan-spectator v1.0"

// Journal accumulates the text log in memory. Each commit becomes one
// record; retracting pops the newest record, so the rendered journal only
// ever shows finalized actions.
type Journal struct {
	header  []string
	records [][]string
	colors  map[board.Seat]string

	// now is swappable for deterministic tests.
	now func() time.Time
}

var _ game.Emitter = (*Journal)(nil)

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{now: time.Now}
}

// GameStarted renders the header: roster, terrain, numbers, and ports, in
// board order, enough to rebuild the same board for a replay.
func (j *Journal) GameStarted(info game.StartInfo) {
	j.header = nil
	j.records = nil
	j.colors = make(map[board.Seat]string, len(info.Players))
	for _, p := range info.Players {
		j.colors[p.Seat] = p.Color
	}

	j.push(&j.header, FormatVersion)
	j.push(&j.header, fmt.Sprintf("timestamp: %s", j.now().Format(time.RFC3339)))
	j.push(&j.header, fmt.Sprintf("players: %d", len(info.Players)))
	for _, p := range info.Players {
		j.push(&j.header, fmt.Sprintf("name: %s, color: %s, seat: %d", p.Name, p.Color, p.Seat))
	}
	j.push(&j.header, "terrain: "+joinTerrain(info.Terrain))
	j.push(&j.header, "numbers: "+joinNumbers(info.Numbers))
	j.push(&j.header, "ports: "+joinPorts(info.Ports))
}

// ActionCommitted appends one record for the commit. Actions that only set
// up a later line (moving the robber, playing a knight) append an empty
// record so retraction stays one-to-one with commits.
func (j *Journal) ActionCommitted(c game.Commit) {
	record := j.renderCommit(c)
	if c.Won {
		record = append(record, fmt.Sprintf("%s wins", c.Actor.Color))
	}
	j.records = append(j.records, record)
}

// ActionRetracted drops the newest record.
func (j *Journal) ActionRetracted() {
	if len(j.records) == 0 {
		return
	}
	j.records = j.records[:len(j.records)-1]
}

// GameEnded needs no extra line: the winning commit already carries it.
func (j *Journal) GameEnded(game.Player) {}

// Lines returns the full journal, header first.
func (j *Journal) Lines() []string {
	out := make([]string, 0, len(j.header)+len(j.records))
	out = append(out, j.header...)
	for _, r := range j.records {
		out = append(out, r...)
	}
	return out
}

// Tail returns the lines of the newest record; empty for commits that
// render no line of their own.
func (j *Journal) Tail() []string {
	if len(j.records) == 0 {
		return nil
	}
	return j.records[len(j.records)-1]
}

// Render joins the journal into one newline-terminated string.
func (j *Journal) Render() string {
	lines := j.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteTo writes the rendered journal, satisfying io.WriterTo.
func (j *Journal) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, j.Render())
	return int64(n), err
}

func (j *Journal) push(dst *[]string, line string) {
	*dst = append(*dst, line)
}

func (j *Journal) colorOf(s board.Seat) string {
	if c, ok := j.colors[s]; ok {
		return c
	}
	return fmt.Sprintf("seat %d", s)
}

func (j *Journal) renderCommit(c game.Commit) []string {
	color := c.Actor.Color
	switch a := c.Action.(type) {
	case game.PlaceSettlement:
		if free, _ := c.Details["free"].(bool); free {
			return []string{fmt.Sprintf("%s builds settlement at %d", color, a.Node)}
		}
		return []string{fmt.Sprintf("%s buys settlement, builds at %d", color, a.Node)}
	case game.PlaceCity:
		return []string{fmt.Sprintf("%s buys city, builds at %d", color, a.Node)}
	case game.PlaceRoad:
		if free, _ := c.Details["free"].(bool); free {
			return []string{fmt.Sprintf("%s builds road at %d", color, a.Edge)}
		}
		return []string{fmt.Sprintf("%s buys road, builds at %d", color, a.Edge)}
	case game.RollDice:
		return []string{fmt.Sprintf("%s rolls %d", color, a.Die1+a.Die2)}
	case game.Discard:
		return []string{fmt.Sprintf("%s discards %s", color, a.Cards)}
	case game.MoveRobber:
		// Rendered with the steal that follows.
		return nil
	case game.Steal:
		robber, _ := c.Details["robber"].(int)
		verb := fmt.Sprintf("%s moves robber to %d", color, robber)
		if via, _ := c.Details["via_knight"].(bool); via {
			verb = fmt.Sprintf("%s plays knight, moves robber to %d", color, robber)
		}
		if a.Victim == 0 {
			return []string{verb + ", steals from no one"}
		}
		return []string{fmt.Sprintf("%s, steals from %s", verb, j.colorOf(a.Victim))}
	case game.TradePort:
		return []string{fmt.Sprintf("%s trades %s to port %s for %s", color, a.Give, a.Port, a.Get)}
	case game.TradePlayer:
		return []string{fmt.Sprintf("%s trades %s to player %s for %s", color, a.Give, j.colorOf(a.Partner), a.Get)}
	case game.BuyDevCard:
		return []string{fmt.Sprintf("%s buys dev card", color)}
	case game.PlayKnight:
		// Rendered with the steal that follows.
		return nil
	case game.PlayMonopoly:
		total, _ := c.Details["total"].(int)
		return []string{fmt.Sprintf("%s plays monopoly on %s, takes %d", color, a.Resource, total)}
	case game.PlayYearOfPlenty:
		taken := game.Hand{}
		taken[a.First]++
		taken[a.Second]++
		return []string{fmt.Sprintf("%s plays year of plenty, takes %s", color, taken)}
	case game.PlayRoadBuilder:
		return []string{fmt.Sprintf("%s plays road builder, builds at %d and %d", color, a.EdgeA, a.EdgeB)}
	case game.PlayVictoryPoint:
		return []string{fmt.Sprintf("%s plays victory point", color)}
	case game.EndTurn:
		return []string{fmt.Sprintf("%s ends turn", color)}
	case game.EndGame:
		// The win line comes from the Won flag.
		return nil
	}
	return []string{fmt.Sprintf("%s %s", color, c.Action.Kind())}
}

func joinTerrain(terrain []board.Terrain) string {
	parts := make([]string, len(terrain))
	for i, t := range terrain {
		if t == "" {
			t = "empty"
		}
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

func joinNumbers(numbers []board.HexNumber) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " ")
}

func joinPorts(ports []board.Port) string {
	if len(ports) == 0 {
		return "none"
	}
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = fmt.Sprintf("%s(%d %s)", p.Kind, p.Tile, p.Dir)
	}
	return strings.Join(parts, " ")
}
