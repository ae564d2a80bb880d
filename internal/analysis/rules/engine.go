// Package rules holds the declarative rule table and the engine that turns
// a document context into an ordered issue list.
package rules

import (
	"sort"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// Patch is what a firing rule returns. A zero Patch fires the rule with its
// own fields; set fields override them.
type Patch struct {
	Severity   domain.Severity
	ScoreDelta *float64
	Message    string
	Evidence   []domain.Evidence
}

// EvaluateFunc inspects a context. It returns nil when the rule does not fire.
type EvaluateFunc func(c *document.Context) *Patch

// Rule is one row of the rule table. Rules are pure and never reference
// each other.
type Rule struct {
	ID          string
	Severity    domain.Severity
	Category    domain.Category
	ScoreDelta  float64
	Title       string
	Message     string
	Explanation string
	Why         string
	Fix         string
	Evaluate    EvaluateFunc
	// Samples supplies default evidence when the patch carries none.
	Samples func(c *document.Context) []domain.Evidence
}

// PanicHook observes a rule that panicked during evaluation.
type PanicHook func(ruleID string, recovered any)

// Engine evaluates an ordered rule table.
type Engine struct {
	rules   []Rule
	onPanic PanicHook
}

// Option configures an Engine.
type Option func(*Engine)

// WithPanicHook registers a hook called when a rule panics.
func WithPanicHook(h PanicHook) Option {
	return func(e *Engine) { e.onPanic = h }
}

// NewEngine builds an engine over rules. A nil slice selects the default table.
func NewEngine(rules []Rule, opts ...Option) *Engine {
	if rules == nil {
		rules = Table()
	}
	e := &Engine{rules: rules}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Rules returns the engine's rule table.
func (e *Engine) Rules() []Rule { return e.rules }

// Evaluate runs every rule against c and returns the fired issues sorted by
// severity rank, then id. A panicking rule counts as not fired.
func (e *Engine) Evaluate(c *document.Context) []domain.Issue {
	issues := make([]domain.Issue, 0, 16)
	for _, r := range e.rules {
		p, ok := e.run(r, c)
		if !ok || p == nil {
			continue
		}
		issues = append(issues, e.assemble(r, p, c))
	}
	sort.SliceStable(issues, func(i, j int) bool {
		ri, rj := issues[i].Severity.Rank(), issues[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return issues[i].ID < issues[j].ID
	})
	return issues
}

func (e *Engine) run(r Rule, c *document.Context) (p *Patch, ok bool) {
	defer func() {
		if v := recover(); v != nil {
			if e.onPanic != nil {
				e.onPanic(r.ID, v)
			}
			p, ok = nil, false
		}
	}()
	if r.Evaluate == nil {
		return nil, false
	}
	return r.Evaluate(c), true
}

func (e *Engine) assemble(r Rule, p *Patch, c *document.Context) domain.Issue {
	is := domain.Issue{
		ID:          r.ID,
		Severity:    r.Severity,
		Category:    r.Category,
		ScoreDelta:  r.ScoreDelta,
		Title:       r.Title,
		Message:     r.Message,
		Explanation: r.Explanation,
		Why:         r.Why,
		Fix:         r.Fix,
		Evidence:    p.Evidence,
	}
	if p.Severity != "" {
		is.Severity = p.Severity
	}
	if p.ScoreDelta != nil {
		is.ScoreDelta = *p.ScoreDelta
	}
	if p.Message != "" {
		is.Message = p.Message
	}
	if len(is.Evidence) == 0 {
		is.Evidence = e.samples(r, c)
	}
	if is.Evidence == nil {
		is.Evidence = []domain.Evidence{}
	}
	is.AppliedScoreDelta = is.ScoreDelta
	return is
}

// samples runs the rule's own sampler, falling back to the first relevant
// bullets or lines. A panicking sampler yields the fallback.
func (e *Engine) samples(r Rule, c *document.Context) (out []domain.Evidence) {
	if r.Samples != nil {
		func() {
			defer func() {
				if v := recover(); v != nil {
					if e.onPanic != nil {
						e.onPanic(r.ID, v)
					}
					out = nil
				}
			}()
			out = r.Samples(c)
		}()
		if len(out) > 0 {
			return out
		}
	}
	return defaultSamples(c)
}
