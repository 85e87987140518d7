// Package evaluation scores competing model structures on held-out
// data. Each candidate formula is refit from scratch on the train
// partition so nothing learned from the full dataset leaks into the
// test-set error.
package evaluation

import (
	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/formula"
	"github.com/sawruhv/Less-Stress-More-Regress/metrics"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

// Candidate names one model structure to score. Candidates may use
// different response columns (a raw and a transformed response, say);
// each is scored in its own response units.
type Candidate struct {
	Name    string
	Formula *formula.Formula
}

// Score is one candidate's held-out result: the model refit on the
// train partition and its test-set RMSE.
type Score struct {
	Name    string
	Formula string
	RMSE    float64
	Model   *regression.Model
}

// Result is a holdout evaluation across all candidates on one shared
// split.
type Result struct {
	TrainRows int
	TestRows  int
	Seed      int64
	Scores    []Score
}

// Holdout splits t once with the given fraction and seed, refits every
// candidate on the train partition, and reports each candidate's RMSE
// on the test partition. The split is shared so the scores compare
// structures, not partitions, and it is deterministic per seed.
func Holdout(t *dataset.Table, candidates []Candidate, trainFraction float64, seed int64) (_ *Result, err error) {
	defer regressErrors.Recover(&err, "evaluation.Holdout")

	if len(candidates) == 0 {
		return nil, regressErrors.NewValueError("evaluation.Holdout", "no candidate formulas")
	}

	train, test, err := dataset.Split(t, trainFraction, seed)
	if err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("evaluation")
	res := &Result{
		TrainRows: train.NumRows(),
		TestRows:  test.NumRows(),
		Seed:      seed,
		Scores:    make([]Score, 0, len(candidates)),
	}

	for _, c := range candidates {
		m, err := regression.Fit(train, c.Formula)
		if err != nil {
			return nil, regressErrors.Wrapf(err, "evaluation.Holdout: refit %s", c.Name)
		}

		pred, err := m.Predict(test)
		if err != nil {
			return nil, regressErrors.Wrapf(err, "evaluation.Holdout: predict %s", c.Name)
		}
		actual, err := test.Floats(c.Formula.Response)
		if err != nil {
			return nil, regressErrors.Wrapf(err, "evaluation.Holdout: response %s", c.Name)
		}
		rmse, err := metrics.RMSE(actual, pred)
		if err != nil {
			return nil, regressErrors.Wrapf(err, "evaluation.Holdout: RMSE %s", c.Name)
		}

		res.Scores = append(res.Scores, Score{
			Name:    c.Name,
			Formula: c.Formula.String(),
			RMSE:    rmse,
			Model:   m,
		})
		logger.Info("Candidate scored",
			log.OperationKey, log.OperationEvaluate,
			log.PhaseKey, log.PhaseInference,
			log.FormulaKey, c.Formula.String(),
			log.RMSEKey, rmse,
			log.SamplesKey, test.NumRows(),
		)
	}
	return res, nil
}
