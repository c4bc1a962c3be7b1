package stepwise

import "go.uber.org/zap"

// MaxReductionSteps bounds a single reduction. Reaching it means a rewrite
// rule loops, which is reported as ErrImpossibleAction.
const MaxReductionSteps = 10_000

// Reduce returns e followed by every intermediate form down to the fixpoint.
func Reduce(e Expr) ([]Expr, error) {
	forms := []Expr{e}
	current := e
	for i := 1; ; i++ {
		next, ok := current.Step()
		if !ok {
			return forms, nil
		}
		if i > MaxReductionSteps {
			return nil, impossibleAction("no fixpoint after %d steps from %s", MaxReductionSteps, e)
		}
		if ce := lg().Check(zap.DebugLevel, "step"); ce != nil {
			ce.Write(zap.Int("n", i), zap.Stringer("kind", next.Kind()), zap.Stringer("expr", next))
		}
		forms = append(forms, next)
		current = next
	}
}

// ReduceFully returns the terminal form of e.
func ReduceFully(e Expr) (Expr, error) {
	forms, err := Reduce(e)
	if err != nil {
		return nil, err
	}
	return forms[len(forms)-1], nil
}

// Steps renders the worked reduction of e, one line per distinct rendering.
func Steps(e Expr, opts RenderOptions) ([]string, error) {
	forms, err := Reduce(e)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(forms))
	for _, f := range forms {
		s := f.Render(opts)
		if len(lines) > 0 && lines[len(lines)-1] == s {
			continue
		}
		lines = append(lines, s)
	}
	return lines, nil
}
