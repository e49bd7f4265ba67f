// Package detect decides, from a sample of cell values, whether a column
// holds dates and in which day/month/year order.
package detect

import (
	"strings"

	"github.com/KaramelBytes/datefix-cli/internal/dateparse"
)

// Ambiguity distinguishes the two ways order inference can fail to commit.
type Ambiguity int

const (
	// NotAmbiguous: the sample uniquely determines the order.
	NotAmbiguous Ambiguity = iota
	// NoEvidence: every sampled token is compatible with both DMY and MDY.
	NoEvidence
	// Conflict: conclusive tokens disagree; no single order fits the sample.
	Conflict
)

func (a Ambiguity) String() string {
	switch a {
	case NotAmbiguous:
		return "resolved"
	case NoEvidence:
		return "no distinguishing evidence"
	case Conflict:
		return "conflicting evidence"
	}
	return "unknown"
}

// Verdict is the per-column outcome consumed by resolution and rewriting.
type Verdict struct {
	IsDate    bool
	Resolved  bool
	Order     dateparse.Order // valid only when Resolved
	Ambiguity Ambiguity       // valid only when IsDate
	NonEmpty  int
	Parsed    int
}

// Classify inspects a column sample and returns its verdict. A column counts
// as a date column when a strict majority of its non-empty sampled cells
// tokenize; order inference then runs over the parsed tokens.
func Classify(sample []string) Verdict {
	var v Verdict
	var tokens []dateparse.Token
	for _, cell := range sample {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		v.NonEmpty++
		if tok, ok := dateparse.Parse(cell); ok {
			v.Parsed++
			tokens = append(tokens, tok)
		}
	}
	if v.NonEmpty == 0 || v.Parsed*2 <= v.NonEmpty {
		return v
	}
	v.IsDate = true
	v.Order, v.Ambiguity = InferOrder(tokens)
	v.Resolved = v.Ambiguity == NotAmbiguous
	return v
}

// tokenOrder applies the per-token rules. A token is conclusive when one of
// its components rules out the alternatives: a 4-digit leading component is a
// year, a leading component above 12 is a day, a middle component above 12
// forces month-first.
func tokenOrder(t dateparse.Token) (dateparse.Order, bool) {
	switch {
	case t.A >= 1000:
		return dateparse.YMD, true
	case t.A > 12:
		return dateparse.DMY, true
	case t.B > 12:
		return dateparse.MDY, true
	}
	return 0, false
}

// InferOrder folds the per-token verdicts into a column-level one. All
// conclusive tokens must agree; disagreement is a Conflict, a sample with no
// conclusive token at all is NoEvidence. Both escalate to resolution policy.
func InferOrder(tokens []dateparse.Token) (dateparse.Order, Ambiguity) {
	var (
		order dateparse.Order
		seen  bool
	)
	for _, t := range tokens {
		o, conclusive := tokenOrder(t)
		if !conclusive {
			continue
		}
		if seen && o != order {
			return 0, Conflict
		}
		order, seen = o, true
	}
	if !seen {
		return 0, NoEvidence
	}
	return order, NotAmbiguous
}
