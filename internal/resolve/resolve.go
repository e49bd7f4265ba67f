// Package resolve turns an inference verdict plus run configuration into the
// final order applied to a column. Interactive prompting is injected as a
// Prompter so the decision logic never touches a terminal directly.
package resolve

import (
	"fmt"

	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
	"github.com/KaramelBytes/datefix-cli/internal/detect"
)

// Choice is a prompter's answer for one ambiguous column.
type Choice struct {
	Order dateparse.Order
	Skip  bool
}

// Prompter supplies an order for a column the sample could not resolve.
// Implementations may block indefinitely (operator-paced).
type Prompter interface {
	ResolveColumn(name string, samples []string) (Choice, error)
}

// Config is the run configuration relevant to resolution, immutable per run.
type Config struct {
	NoPrompt bool
	Assume   *dateparse.Order
	Force    *dateparse.Order
}

// Decision is the resolved outcome for one column.
type Decision struct {
	Apply   bool
	Order   dateparse.Order
	Warning string // non-empty when the column was skipped with a reason
}

// Decide runs the per-column resolution state machine:
// force > confident inference > assume > prompt > skip-with-warning.
// Columns not classified as dates are never applied. The prompter is consulted
// only for ambiguous columns with prompting enabled; a prompter error aborts
// the run (it means the interactive channel itself failed).
func Decide(cfg Config, name string, v detect.Verdict, samples []string, pr Prompter) (Decision, error) {
	if !v.IsDate {
		return Decision{}, nil
	}
	if cfg.Force != nil {
		return Decision{Apply: true, Order: *cfg.Force}, nil
	}
	if v.Resolved {
		return Decision{Apply: true, Order: v.Order}, nil
	}
	if cfg.NoPrompt {
		if cfg.Assume != nil {
			return Decision{Apply: true, Order: *cfg.Assume}, nil
		}
		return Decision{
			Warning: fmt.Sprintf("column %q is ambiguous (%s) and no --assume order was given; leaving it unchanged", name, v.Ambiguity),
		}, nil
	}
	if pr == nil {
		return Decision{}, fmt.Errorf("column %q is ambiguous but no prompter is available", name)
	}
	choice, err := pr.ResolveColumn(name, samples)
	if err != nil {
		return Decision{}, fmt.Errorf("resolve column %q: %w", name, err)
	}
	if choice.Skip {
		return Decision{
			Warning: fmt.Sprintf("column %q skipped at prompt; leaving it unchanged", name),
		}, nil
	}
	return Decision{Apply: true, Order: choice.Order}, nil
}
