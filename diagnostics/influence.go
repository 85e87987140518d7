package diagnostics

import (
	"math"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

// Influence holds per-observation influence measures for one fitted
// model, in observation order.
type Influence struct {
	// Leverage is the hat-matrix diagonal.
	Leverage []float64
	// CooksDistance is e_i² / (p·s²) · h_i / (1−h_i)².
	CooksDistance []float64
	// Threshold is the flagging cutoff, multiplier/n.
	Threshold float64
	// Flagged lists the indices with Cook's distance above Threshold,
	// ascending.
	Flagged []int
}

// defaultCookMultiplier is the k in the conventional k/n cutoff.
const defaultCookMultiplier = 4

type influenceConfig struct {
	multiplier float64
}

// InfluenceOption adjusts how ComputeInfluence flags observations.
type InfluenceOption func(*influenceConfig)

// WithCookMultiplier sets k in the k/n flagging threshold. Values at
// or below zero keep the default of 4.
func WithCookMultiplier(k float64) InfluenceOption {
	return func(c *influenceConfig) {
		if k > 0 {
			c.multiplier = k
		}
	}
}

// ComputeInfluence derives leverage and Cook's distance from a fitted
// model and flags observations whose distance exceeds the k/n
// threshold (k defaults to 4).
func ComputeInfluence(m *regression.Model, opts ...InfluenceOption) *Influence {
	cfg := influenceConfig{multiplier: defaultCookMultiplier}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := m.N
	p := float64(m.P)
	inf := &Influence{
		Leverage:      append([]float64(nil), m.Leverage...),
		CooksDistance: make([]float64, n),
		Threshold:     cfg.multiplier / float64(n),
	}

	for i := 0; i < n; i++ {
		h := m.Leverage[i]
		e := m.Residuals[i]
		if h >= 1 {
			// The fit passes through this point exactly; treat it as
			// maximally influential.
			inf.CooksDistance[i] = math.Inf(1)
		} else {
			d := 1 - h
			inf.CooksDistance[i] = (e * e / (p * m.SigmaSq)) * h / (d * d)
		}
		if inf.CooksDistance[i] > inf.Threshold {
			inf.Flagged = append(inf.Flagged, i)
		}
	}

	log.GetLoggerWithName("diagnostics").Info("Influence computed",
		log.OperationKey, log.OperationEvaluate,
		log.PhaseKey, log.PhaseDiagnostics,
		log.SamplesKey, n,
		log.DroppedKey, len(inf.Flagged),
	)
	return inf
}

// Trim returns t without the flagged rows. The pass runs once; it does
// not refit and re-flag. With nothing flagged the input table comes
// back as is, so callers keep the original rows either way.
//
// Errors:
//   - DimensionError: the table's row count differs from the measures'
//   - ValueError: every observation is flagged
func (inf *Influence) Trim(t *dataset.Table) (*dataset.Table, error) {
	n := len(inf.CooksDistance)
	if t.NumRows() != n {
		return nil, regressErrors.NewDimensionError("diagnostics.Influence.Trim", n, t.NumRows(), 0)
	}
	if len(inf.Flagged) == 0 {
		return t, nil
	}
	if len(inf.Flagged) == n {
		return nil, regressErrors.NewValueError("diagnostics.Influence.Trim",
			"every observation flagged as influential")
	}

	flagged := make(map[int]bool, len(inf.Flagged))
	for _, i := range inf.Flagged {
		flagged[i] = true
	}
	keep := make([]int, 0, n-len(inf.Flagged))
	for i := 0; i < n; i++ {
		if !flagged[i] {
			keep = append(keep, i)
		}
	}
	return t.Subset(keep)
}

// RemoveInfluential computes influence for m and drops the flagged
// observations from t, returning the trimmed table together with the
// flagged indices.
func RemoveInfluential(t *dataset.Table, m *regression.Model, opts ...InfluenceOption) (*dataset.Table, []int, error) {
	inf := ComputeInfluence(m, opts...)
	trimmed, err := inf.Trim(t)
	if err != nil {
		return nil, nil, err
	}
	return trimmed, inf.Flagged, nil
}
