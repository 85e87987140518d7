// Package report collects the results of an analysis run into one
// document and renders it as text, YAML, CSV diagnostics, and PNG
// plots. Sections are added as stages complete; a section missing from
// the report simply means the run never reached that stage.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/diagnostics"
	"github.com/sawruhv/Less-Stress-More-Regress/evaluation"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
	"github.com/sawruhv/Less-Stress-More-Regress/selection"
)

// Report is the accumulated study output.
type Report struct {
	Title       string    `yaml:"title"`
	GeneratedAt time.Time `yaml:"generated_at"`

	Cleaning  *CleaningSection  `yaml:"cleaning,omitempty"`
	Models    []ModelSection    `yaml:"models,omitempty"`
	Influence *InfluenceSection `yaml:"influence,omitempty"`
	BoxCox    *BoxCoxSection    `yaml:"box_cox,omitempty"`
	VIF       *VIFSection       `yaml:"vif,omitempty"`
	Stepwise  *StepwiseSection  `yaml:"stepwise,omitempty"`
	Holdout   *HoldoutSection   `yaml:"holdout,omitempty"`
}

// CleaningSection audits the row filters.
type CleaningSection struct {
	InputRows   int `yaml:"input_rows"`
	Missing     int `yaml:"missing_dropped"`
	Sentinel    int `yaml:"sentinel_dropped"`
	NonFilm     int `yaml:"non_film_dropped"`
	Duplicate   int `yaml:"duplicate_dropped"`
	Unparseable int `yaml:"unparseable_dropped"`
	OutputRows  int `yaml:"output_rows"`
}

// Coefficient is one row of a model's coefficient table.
type Coefficient struct {
	Name     string  `yaml:"name"`
	Estimate float64 `yaml:"estimate"`
	StdErr   float64 `yaml:"std_error"`
	T        float64 `yaml:"t_value"`
	P        float64 `yaml:"p_value"`
}

// NormalitySection records a Shapiro-Wilk decision for one model.
type NormalitySection struct {
	W        float64 `yaml:"shapiro_w"`
	P        float64 `yaml:"shapiro_p"`
	Alpha    float64 `yaml:"alpha"`
	Rejected bool    `yaml:"rejected"`
}

// ModelSection summarizes one fitted model.
type ModelSection struct {
	Name         string            `yaml:"name"`
	Formula      string            `yaml:"formula"`
	N            int               `yaml:"n"`
	Coefficients []Coefficient     `yaml:"coefficients"`
	R2           float64           `yaml:"r_squared"`
	AdjR2        float64           `yaml:"adj_r_squared"`
	AIC          float64           `yaml:"aic"`
	Normality    *NormalitySection `yaml:"normality,omitempty"`
}

// InfluenceSection records the Cook's distance pass.
type InfluenceSection struct {
	Threshold float64 `yaml:"threshold"`
	Flagged   []int   `yaml:"flagged_rows"`
	RowsAfter int     `yaml:"rows_after"`
}

// BoxCoxSection records the selected response transform.
type BoxCoxSection struct {
	Lambda float64 `yaml:"lambda"`
	Shift  float64 `yaml:"shift"`
}

// VIFEntry is one column's variance inflation factor.
type VIFEntry struct {
	Column string  `yaml:"column"`
	Value  float64 `yaml:"value"`
}

// VIFSection lists collinearity diagnostics for the widest model.
type VIFSection struct {
	Values []VIFEntry `yaml:"values"`
}

// StepEntry is one stepwise search state.
type StepEntry struct {
	Dropped string  `yaml:"dropped,omitempty"`
	Formula string  `yaml:"formula"`
	AIC     float64 `yaml:"aic"`
}

// StepwiseSection records the backward search trace.
type StepwiseSection struct {
	Steps []StepEntry `yaml:"steps"`
	Final string      `yaml:"final_formula"`
}

// ScoreEntry is one candidate's held-out RMSE.
type ScoreEntry struct {
	Name    string  `yaml:"name"`
	Formula string  `yaml:"formula"`
	RMSE    float64 `yaml:"rmse"`
}

// HoldoutSection records the final train/test comparison.
type HoldoutSection struct {
	TrainRows int          `yaml:"train_rows"`
	TestRows  int          `yaml:"test_rows"`
	Seed      int64        `yaml:"seed"`
	Scores    []ScoreEntry `yaml:"scores"`
}

// New starts an empty report.
func New(title string) *Report {
	return &Report{
		Title:       title,
		GeneratedAt: time.Now(),
	}
}

// AddCleaning records the cleaning audit.
func (r *Report) AddCleaning(rep dataset.CleanReport) {
	r.Cleaning = &CleaningSection{
		InputRows:   rep.Input,
		Missing:     rep.MissingDropped,
		Sentinel:    rep.SentinelDropped,
		NonFilm:     rep.NonFilmDropped,
		Duplicate:   rep.DuplicateDropped,
		Unparseable: rep.CoercionDropped,
		OutputRows:  rep.Output,
	}
}

// AddModel appends a model summary. A nil normality section means the
// test was not run for this model.
func (r *Report) AddModel(name string, m *regression.Model, normality *NormalitySection) {
	sec := ModelSection{
		Name:    name,
		Formula: m.Formula.String(),
		N:       m.N,
		R2:      m.R2,
		AdjR2:   m.AdjR2,
		AIC:     m.AIC,
	}
	for j, coefName := range m.Names {
		sec.Coefficients = append(sec.Coefficients, Coefficient{
			Name:     coefName,
			Estimate: m.Coef[j],
			StdErr:   m.StdErr[j],
			T:        m.TStats[j],
			P:        m.PValues[j],
		})
	}
	sec.Normality = normality
	r.Models = append(r.Models, sec)
}

// AddInfluence records the influence pass and the surviving row count.
func (r *Report) AddInfluence(inf *diagnostics.Influence, rowsAfter int) {
	r.Influence = &InfluenceSection{
		Threshold: inf.Threshold,
		Flagged:   append([]int(nil), inf.Flagged...),
		RowsAfter: rowsAfter,
	}
}

// AddBoxCox records the selected exponent and any response shift.
func (r *Report) AddBoxCox(lambda, shift float64) {
	r.BoxCox = &BoxCoxSection{Lambda: lambda, Shift: shift}
}

// AddVIF records collinearity diagnostics.
func (r *Report) AddVIF(values []diagnostics.ColumnVIF) {
	sec := &VIFSection{}
	for _, v := range values {
		sec.Values = append(sec.Values, VIFEntry{Column: v.Column, Value: v.Value})
	}
	r.VIF = sec
}

// AddStepwise records the backward search trace.
func (r *Report) AddStepwise(res *selection.Result) {
	sec := &StepwiseSection{Final: res.Model.Formula.String()}
	for _, s := range res.Steps {
		sec.Steps = append(sec.Steps, StepEntry{Dropped: s.Dropped, Formula: s.Formula, AIC: s.AIC})
	}
	r.Stepwise = sec
}

// AddHoldout records the final held-out comparison.
func (r *Report) AddHoldout(res *evaluation.Result) {
	sec := &HoldoutSection{
		TrainRows: res.TrainRows,
		TestRows:  res.TestRows,
		Seed:      res.Seed,
	}
	for _, s := range res.Scores {
		sec.Scores = append(sec.Scores, ScoreEntry{Name: s.Name, Formula: s.Formula, RMSE: s.RMSE})
	}
	r.Holdout = sec
}

// Render lays the report out as plain text, one block per completed
// stage.
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "generated %s\n", r.GeneratedAt.Format(time.RFC3339))

	if c := r.Cleaning; c != nil {
		fmt.Fprintf(&b, "\n== Cleaning ==\n")
		fmt.Fprintf(&b, "  input rows          %6d\n", c.InputRows)
		fmt.Fprintf(&b, "  missing dropped     %6d\n", c.Missing)
		fmt.Fprintf(&b, "  sentinel dropped    %6d\n", c.Sentinel)
		fmt.Fprintf(&b, "  non-film dropped    %6d\n", c.NonFilm)
		fmt.Fprintf(&b, "  duplicate dropped   %6d\n", c.Duplicate)
		fmt.Fprintf(&b, "  unparseable dropped %6d\n", c.Unparseable)
		fmt.Fprintf(&b, "  output rows         %6d\n", c.OutputRows)
	}

	for _, m := range r.Models {
		fmt.Fprintf(&b, "\n== Model: %s ==\n", m.Name)
		fmt.Fprintf(&b, "  %s   (n = %d)\n", m.Formula, m.N)
		fmt.Fprintf(&b, "  %-24s %12s %10s %8s %10s\n", "term", "estimate", "std.err", "t", "p")
		for _, c := range m.Coefficients {
			fmt.Fprintf(&b, "  %-24s %12.5f %10.5f %8.3f %10.2e\n", c.Name, c.Estimate, c.StdErr, c.T, c.P)
		}
		fmt.Fprintf(&b, "  R² = %.4f   adj R² = %.4f   AIC = %.2f\n", m.R2, m.AdjR2, m.AIC)
		if nm := m.Normality; nm != nil {
			verdict := "not rejected"
			if nm.Rejected {
				verdict = "REJECTED"
			}
			fmt.Fprintf(&b, "  normality: W = %.4f, p = %.4g -> %s at alpha %.2g\n", nm.W, nm.P, verdict, nm.Alpha)
		}
	}

	if inf := r.Influence; inf != nil {
		fmt.Fprintf(&b, "\n== Influence ==\n")
		fmt.Fprintf(&b, "  Cook's distance threshold %.4g\n", inf.Threshold)
		fmt.Fprintf(&b, "  flagged rows %v\n", inf.Flagged)
		fmt.Fprintf(&b, "  rows after trim %d\n", inf.RowsAfter)
	}

	if bc := r.BoxCox; bc != nil {
		fmt.Fprintf(&b, "\n== Box-Cox ==\n")
		fmt.Fprintf(&b, "  lambda = %.2f", bc.Lambda)
		if bc.Shift != 0 {
			fmt.Fprintf(&b, "   (response shifted by %+g)", bc.Shift)
		}
		fmt.Fprintf(&b, "\n")
	}

	if v := r.VIF; v != nil {
		fmt.Fprintf(&b, "\n== VIF ==\n")
		for _, e := range v.Values {
			fmt.Fprintf(&b, "  %-24s %8.3f\n", e.Column, e.Value)
		}
	}

	if s := r.Stepwise; s != nil {
		fmt.Fprintf(&b, "\n== Stepwise (backward, AIC) ==\n")
		for i, step := range s.Steps {
			if step.Dropped == "" {
				fmt.Fprintf(&b, "  start: %s   AIC = %.3f\n", step.Formula, step.AIC)
				continue
			}
			fmt.Fprintf(&b, "  step %d: drop %-18s AIC = %.3f\n", i, step.Dropped, step.AIC)
		}
		fmt.Fprintf(&b, "  final: %s\n", s.Final)
	}

	if h := r.Holdout; h != nil {
		fmt.Fprintf(&b, "\n== Holdout (train %d / test %d, seed %d) ==\n", h.TrainRows, h.TestRows, h.Seed)
		for _, s := range h.Scores {
			fmt.Fprintf(&b, "  %-12s RMSE = %.4f   (%s)\n", s.Name, s.RMSE, s.Formula)
		}
	}

	return b.String()
}
