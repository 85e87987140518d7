// Package selection reduces a regression model by backward stepwise
// search on AIC. The search is deliberately local: at each step it
// considers dropping exactly one removable term, commits the best
// strict improvement, and stops at the first fixed point. Main effects
// stay locked while an interaction containing them remains (the
// marginality rule), and no terms are ever added back.
package selection

import (
	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/formula"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

// Step records one state of the search: the formula in force after the
// action and its AIC. The first step has Dropped == "" and holds the
// starting model.
type Step struct {
	Dropped string
	Formula string
	AIC     float64
}

// Result is the selected model plus the per-step trace.
type Result struct {
	Model *regression.Model
	Steps []Step
}

type config struct {
	maxSteps int
}

// Option adjusts the backward search.
type Option func(*config)

// WithMaxSteps caps the number of committed drops. Zero or negative
// means unlimited; the term count bounds the search anyway.
func WithMaxSteps(n int) Option {
	return func(c *config) {
		c.maxSteps = n
	}
}

// Backward fits the starting formula against t and then repeatedly
// drops the removable term whose removal improves AIC the most,
// refitting from the table each time. It stops when no single removal
// strictly improves AIC.
func Backward(t *dataset.Table, start *formula.Formula, opts ...Option) (_ *Result, err error) {
	defer regressErrors.Recover(&err, "selection.Backward")

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := log.GetLoggerWithName("selection")

	current, err := regression.Fit(t, start)
	if err != nil {
		return nil, regressErrors.Wrap(err, "selection.Backward: starting model")
	}

	res := &Result{
		Model: current,
		Steps: []Step{{Formula: start.String(), AIC: current.AIC}},
	}
	logger.Info("Stepwise search started",
		log.OperationKey, log.OperationSelect,
		log.FormulaKey, start.String(),
		log.TermsKey, len(start.Terms),
		log.AICKey, current.AIC,
	)

	drops := 0
	for {
		if cfg.maxSteps > 0 && drops >= cfg.maxSteps {
			break
		}

		var (
			best        *regression.Model
			bestDropped string
		)
		for _, i := range current.Formula.RemovableTerms() {
			reduced := current.Formula.WithoutTerm(i)
			candidate, err := regression.Fit(t, reduced)
			if err != nil {
				return nil, regressErrors.Wrapf(err,
					"selection.Backward: candidate %s", reduced.String())
			}
			if candidate.AIC < current.AIC && (best == nil || candidate.AIC < best.AIC) {
				best = candidate
				bestDropped = current.Formula.Terms[i].String()
			}
		}
		if best == nil {
			break
		}

		current = best
		drops++
		res.Steps = append(res.Steps, Step{
			Dropped: bestDropped,
			Formula: current.Formula.String(),
			AIC:     current.AIC,
		})
		logger.Info("Dropped term",
			log.OperationKey, log.OperationSelect,
			"term", bestDropped,
			log.FormulaKey, current.Formula.String(),
			log.AICKey, current.AIC,
		)
	}

	res.Model = current
	logger.Info("Stepwise search finished",
		log.OperationKey, log.OperationSelect,
		log.FormulaKey, current.Formula.String(),
		log.TermsKey, len(current.Formula.Terms),
		log.AICKey, current.AIC,
	)
	return res, nil
}
