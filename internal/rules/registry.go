// Package rules evaluates the variant-sensitive knobs of the game as CEL
// expressions, so a house-rule file can override them without a rebuild.
package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/brooksandrew/catan-spectator/internal/game"
)

// Expression defaults: the standard base game.
const (
	defaultWinThreshold  = "10"
	defaultMustDiscard   = "hand_size > 7"
	defaultDiscardQuota  = "hand_size / 2"
	defaultRobberMayStay = "false"
)

// Registry compiles the variant expressions once and answers rule queries
// by evaluating them. It satisfies game.Rules.
type Registry struct {
	env *cel.Env

	winThreshold  int
	mustDiscard   cel.Program
	discardQuota  cel.Program
	robberMayStay bool
}

var _ game.Rules = (*Registry)(nil)

// NewRegistry builds a registry from a variant. Zero-valued fields fall
// back to the base game expressions; expressions that do not compile or
// carry the wrong type are rejected here, not at play time.
func NewRegistry(v Variant) (*Registry, error) {
	env, err := cel.NewEnv(
		// hand_size is the discarding player's card count after the 7.
		cel.Variable("hand_size", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("rules env: %w", err)
	}
	r := &Registry{env: env}

	winProg, err := r.compile(pick(v.WinThreshold, defaultWinThreshold), cel.IntType)
	if err != nil {
		return nil, fmt.Errorf("win_threshold: %w", err)
	}
	win, err := evalInt(winProg, nil)
	if err != nil {
		return nil, fmt.Errorf("win_threshold: %w", err)
	}
	if win < 3 {
		return nil, fmt.Errorf("win_threshold %d is below the pregame score", win)
	}
	r.winThreshold = win

	r.mustDiscard, err = r.compile(pick(v.MustDiscard, defaultMustDiscard), cel.BoolType)
	if err != nil {
		return nil, fmt.Errorf("must_discard: %w", err)
	}
	r.discardQuota, err = r.compile(pick(v.DiscardQuota, defaultDiscardQuota), cel.IntType)
	if err != nil {
		return nil, fmt.Errorf("discard_quota: %w", err)
	}

	stayProg, err := r.compile(pick(v.RobberMayStay, defaultRobberMayStay), cel.BoolType)
	if err != nil {
		return nil, fmt.Errorf("robber_may_stay: %w", err)
	}
	r.robberMayStay, err = evalBool(stayProg, nil)
	if err != nil {
		return nil, fmt.Errorf("robber_may_stay: %w", err)
	}

	return r, nil
}

// Standard returns a registry for the unmodified base game.
func Standard() (*Registry, error) {
	return NewRegistry(Variant{})
}

func pick(expr, fallback string) string {
	if expr == "" {
		return fallback
	}
	return expr
}

func (r *Registry) compile(expr string, want *cel.Type) (cel.Program, error) {
	ast, iss := r.env.Compile(expr)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	if !ast.OutputType().IsExactType(want) {
		return nil, fmt.Errorf("expression %q yields %s, want %s", expr, ast.OutputType(), want)
	}
	return r.env.Program(ast)
}

func evalInt(prog cel.Program, vars map[string]any) (int, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	out, _, err := prog.Eval(vars)
	if err != nil {
		return 0, err
	}
	n, ok := out.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("expression yielded %T, want int", out.Value())
	}
	return int(n), nil
}

func evalBool(prog cel.Program, vars map[string]any) (bool, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	out, _, err := prog.Eval(vars)
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression yielded %T, want bool", out.Value())
	}
	return b, nil
}

// WinThreshold is the victory point total that ends the game.
func (r *Registry) WinThreshold() int { return r.winThreshold }

// MustDiscard reports whether a hand of the given size discards after a 7.
// An evaluation failure falls back to the base rule rather than stalling a
// live game.
func (r *Registry) MustDiscard(handSize int) bool {
	b, err := evalBool(r.mustDiscard, map[string]any{"hand_size": handSize})
	if err != nil {
		return handSize > 7
	}
	return b
}

// DiscardQuota is how many cards such a hand must discard.
func (r *Registry) DiscardQuota(handSize int) int {
	n, err := evalInt(r.discardQuota, map[string]any{"hand_size": handSize})
	if err != nil || n < 0 || n > handSize {
		return handSize / 2
	}
	return n
}

// RobberMayStay reports whether the robber may be "moved" to the tile it
// already occupies.
func (r *Registry) RobberMayStay() bool { return r.robberMayStay }
