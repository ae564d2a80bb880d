// Package analysis composes the CV scoring pipeline: normalization, the
// document context, the rule engine, calibration and category scoring.
package analysis

import (
	"github.com/fairyhunter13/cv-feedback/internal/analysis/calibration"
	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/analysis/keywords"
	"github.com/fairyhunter13/cv-feedback/internal/analysis/rules"
	"github.com/fairyhunter13/cv-feedback/internal/analysis/scoring"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
	"github.com/fairyhunter13/cv-feedback/pkg/textx"
)

// Analyzer runs the pipeline. It holds only immutable tuning, the keyword
// registry and the rule table, so one Analyzer can serve concurrent calls.
type Analyzer struct {
	tuning   config.Tuning
	registry *keywords.Registry
	engine   *rules.Engine
	scorer   *scoring.Scorer
}

type options struct {
	rules   []rules.Rule
	onPanic rules.PanicHook
}

// Option configures an Analyzer.
type Option func(*options)

// WithRules replaces the default rule table.
func WithRules(rs []rules.Rule) Option {
	return func(o *options) { o.rules = rs }
}

// WithPanicHook observes rules that panic during evaluation.
func WithPanicHook(h rules.PanicHook) Option {
	return func(o *options) { o.onPanic = h }
}

// New builds an Analyzer. A nil registry selects the built-in keyword packs.
func New(t config.Tuning, reg *keywords.Registry, opts ...Option) *Analyzer {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if reg == nil {
		reg = keywords.DefaultRegistry()
	}
	var engineOpts []rules.Option
	if o.onPanic != nil {
		engineOpts = append(engineOpts, rules.WithPanicHook(o.onPanic))
	}
	return &Analyzer{
		tuning:   t,
		registry: reg,
		engine:   rules.NewEngine(o.rules, engineOpts...),
		scorer:   scoring.New(t.Categories, t.NonCV),
	}
}

// Registry returns the keyword registry.
func (a *Analyzer) Registry() *keywords.Registry { return a.registry }

// Tuning returns the effective tuning.
func (a *Analyzer) Tuning() config.Tuning { return a.tuning }

// Analyze scores text for a role. It never fails: empty or garbled text
// produces a low-signal report.
func (a *Analyzer) Analyze(text, roleID string) domain.Report {
	ctx := document.Build(textx.Normalize(text), roleID, a.registry, a.tuning)
	level := ctx.Level()

	issues := a.engine.Evaluate(ctx)
	issues = calibration.NormalizeEvidence(issues, a.tuning.Evidence)
	issues = calibration.Calibrate(issues, level, a.tuning.Confidence)
	issues = calibration.Adjust(issues, level, a.tuning.Penalty)

	scores, breakdown := a.scorer.Score(scoring.Input{
		Issues:      issues,
		LikelyNonCV: ctx.LikelyNonCV,
		Level:       level,
	})

	cov := ctx.KeywordCoverage
	return domain.Report{
		Scores:          scores,
		Breakdown:       breakdown,
		Issues:          issues,
		KeywordCoverage: cov,
		Debug: domain.Debug{
			ExtractionQuality:               ctx.ExtractionQuality,
			MissingKeywords:                 cov.Missing,
			PenaltyWeights:                  calibration.Weights(level, a.tuning.Penalty),
			KeywordExperienceDependentShare: a.tuning.Penalty.KeywordExperienceDependentShare,
			LikelyNonCV:                     ctx.LikelyNonCV,
			CVSignalScore:                   ctx.CVSignalScore,
		},
	}
}
