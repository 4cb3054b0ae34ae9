package gamelog

import (
	"fmt"
	"os"

	"github.com/brooksandrew/catan-spectator/internal/game"
)

// Recorder fans committed actions out to the in-memory journal and the
// on-disk store. The emitter interface carries no errors, so write
// failures are latched and surfaced through Err.
type Recorder struct {
	journal *Journal
	store   *Store

	journalPath string
	lastErr     error
}

var _ game.Emitter = (*Recorder)(nil)

// NewRecorder wires a journal and a store under one emitter. journalPath
// is where the rendered text journal lands on flush; empty skips it.
func NewRecorder(store *Store, journalPath string) *Recorder {
	return &Recorder{
		journal:     NewJournal(),
		store:       store,
		journalPath: journalPath,
	}
}

// Journal exposes the in-memory text log for display.
func (r *Recorder) Journal() *Journal { return r.journal }

// Err returns the first write failure, if any.
func (r *Recorder) Err() error { return r.lastErr }

func (r *Recorder) latch(err error) {
	if err != nil && r.lastErr == nil {
		r.lastErr = err
	}
}

func (r *Recorder) GameStarted(info game.StartInfo) {
	r.journal.GameStarted(info)
	if r.store != nil {
		r.latch(r.store.AppendStart(info))
	}
}

func (r *Recorder) ActionCommitted(c game.Commit) {
	r.journal.ActionCommitted(c)
	if r.store != nil {
		r.latch(r.store.AppendAction(c.Action))
	}
}

func (r *Recorder) ActionRetracted() {
	r.journal.ActionRetracted()
	if r.store != nil {
		r.latch(r.store.AppendRetract())
	}
}

func (r *Recorder) GameEnded(game.Player) {
	r.latch(r.Flush())
}

// Flush writes the rendered text journal to its configured path.
func (r *Recorder) Flush() error {
	if r.journalPath == "" {
		return nil
	}
	if err := os.WriteFile(r.journalPath, []byte(r.journal.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// Close flushes the journal and closes the store.
func (r *Recorder) Close() error {
	err := r.Flush()
	if r.store != nil {
		if cerr := r.store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
