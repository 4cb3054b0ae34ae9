package game

import "fmt"

// Command is a reversible record of one committed mutating action. apply
// and revert are exact inverses: a command reverted and re-applied leaves
// the game observationally identical.
type Command interface {
	// Action returns the (resolved) action this command executes.
	Action() Action
	apply(g *Game) error
	revert(g *Game) error
	// commit renders the emitter record; called with the post-apply game.
	commit(g *Game) Commit
}

// UndoManager owns the undo and redo stacks. Committing a new command
// clears the redo stack; history never forks.
type UndoManager struct {
	undoStack []Command
	redoStack []Command
}

// NewUndoManager creates an empty history.
func NewUndoManager() *UndoManager {
	return &UndoManager{}
}

// Do applies a command and pushes it onto the undo stack. On error nothing
// is pushed and the game is unchanged (commands mutate only after their
// fallible steps succeed).
func (m *UndoManager) Do(g *Game, c Command) error {
	if err := c.apply(g); err != nil {
		return err
	}
	m.undoStack = append(m.undoStack, c)
	m.redoStack = nil
	return nil
}

// Undo pops the newest command, inverse-applies it, and moves it to the
// redo stack.
func (m *UndoManager) Undo(g *Game) (Command, error) {
	if len(m.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	c := m.undoStack[len(m.undoStack)-1]
	if err := c.revert(g); err != nil {
		// A failed revert means the history and the game state disagree.
		// That is a defect, not a recoverable condition.
		panic(fmt.Sprintf("game: undo failed, history corrupt: %v", err))
	}
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, c)
	return c, nil
}

// Redo re-applies the most recently undone command and moves it back to
// the undo stack.
func (m *UndoManager) Redo(g *Game) (Command, error) {
	if len(m.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	c := m.redoStack[len(m.redoStack)-1]
	if err := c.apply(g); err != nil {
		panic(fmt.Sprintf("game: redo failed, history corrupt: %v", err))
	}
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, c)
	return c, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (m *UndoManager) CanUndo() bool { return len(m.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (m *UndoManager) CanRedo() bool { return len(m.redoStack) > 0 }

// Depth is the number of undoable commands.
func (m *UndoManager) Depth() int { return len(m.undoStack) }
