package analysis

import (
	"time"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/diagnostics"
	"github.com/sawruhv/Less-Stress-More-Regress/evaluation"
	"github.com/sawruhv/Less-Stress-More-Regress/formula"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
	"github.com/sawruhv/Less-Stress-More-Regress/preprocessing"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
	"github.com/sawruhv/Less-Stress-More-Regress/report"
	"github.com/sawruhv/Less-Stress-More-Regress/selection"
)

// shapiroMaxN mirrors the sample-size range of the Shapiro-Wilk
// approximation; models fit on more rows skip the normality test
// instead of failing the stage.
const shapiroMaxN = 5000

// Run executes the fixed study against p.DataPath and returns every
// stage product. It does not write files; see Result.WriteArtifacts.
//
// Stage failures come back as a StageError naming the stage, wrapped
// around the underlying cause.
func Run(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := log.GetLoggerWithName("analysis")
	logger.Info("study starting", log.PathKey, p.DataPath)

	rep := report.New("Movie rating study")
	res := &Result{Report: rep}

	records, err := dataset.Load(p.DataPath)
	if err != nil {
		return nil, stageErr("load", err)
	}
	table, cleanRep, err := dataset.Clean(records)
	if err != nil {
		return nil, stageErr("clean", err)
	}
	res.Clean = cleanRep
	rep.AddCleaning(cleanRep)

	encoder := preprocessing.NewGenreEncoder()
	table, err = encoder.FitTransform(table)
	if err != nil {
		return nil, stageErr("genre encode", err)
	}
	logger.Info("dataset prepared",
		log.SamplesKey, table.NumRows(),
		log.FeaturesKey, len(encoder.FeatureNames()),
	)

	baseForm := baselineFormula(encoder.FeatureNames())
	baseline, err := regression.Fit(table, baseForm)
	if err != nil {
		return nil, stageErr("baseline fit", err)
	}
	res.Baseline = baseline
	norm, err := normalitySection(baseline, p.Alpha, logger)
	if err != nil {
		return nil, stageErr("baseline normality", err)
	}
	rep.AddModel("baseline", baseline, norm)

	influence := diagnostics.ComputeInfluence(baseline,
		diagnostics.WithCookMultiplier(p.CookMultiplier))
	trimmedTable, err := influence.Trim(table)
	if err != nil {
		return nil, stageErr("influence trim", err)
	}
	res.Flagged = influence.Flagged
	rep.AddInfluence(influence, trimmedTable.NumRows())

	trimmed, err := regression.Fit(trimmedTable, baseForm)
	if err != nil {
		return nil, stageErr("trimmed refit", err)
	}
	res.Trimmed = trimmed
	norm, err = normalitySection(trimmed, p.Alpha, logger)
	if err != nil {
		return nil, stageErr("trimmed normality", err)
	}
	rep.AddModel("trimmed", trimmed, norm)

	boxcox := preprocessing.NewBoxCoxTransformer(
		preprocessing.WithGrid(p.BoxCoxMin, p.BoxCoxMax, p.BoxCoxStep),
	)
	design := trimmed.Design()
	if err := boxcox.Fit(design.X, design.Y); err != nil {
		return nil, stageErr("box-cox", err)
	}
	transformedY, err := boxcox.Transform(design.Y)
	if err != nil {
		return nil, stageErr("box-cox", err)
	}
	modelTable, err := trimmedTable.WithFloats(TransformedResponse, transformedY)
	if err != nil {
		return nil, stageErr("box-cox", err)
	}
	res.BoxCox = boxcox
	res.Table = modelTable
	rep.AddBoxCox(boxcox.Lambda, boxcox.Shift())

	transForm := baseForm.WithResponse(TransformedResponse)
	transformed, err := regression.Fit(modelTable, transForm)
	if err != nil {
		return nil, stageErr("transformed refit", err)
	}
	res.Transformed = transformed
	norm, err = normalitySection(transformed, p.Alpha, logger)
	if err != nil {
		return nil, stageErr("transformed normality", err)
	}
	rep.AddModel("box-cox", transformed, norm)

	interForm := interactionFormula(transForm)
	interaction, err := regression.Fit(modelTable, interForm)
	if err != nil {
		return nil, stageErr("interaction fit", err)
	}
	res.Interaction = interaction
	rep.AddModel("interaction", interaction, nil)

	vifs, err := diagnostics.VIF(interaction)
	if err != nil {
		return nil, stageErr("vif", err)
	}
	rep.AddVIF(vifs)

	selected, err := selection.Backward(modelTable, interForm, selection.WithMaxSteps(p.MaxSteps))
	if err != nil {
		return nil, stageErr("stepwise", err)
	}
	res.Selection = selected
	rep.AddStepwise(selected)
	norm, err = normalitySection(selected.Model, p.Alpha, logger)
	if err != nil {
		return nil, stageErr("selected normality", err)
	}
	rep.AddModel("selected", selected.Model, norm)

	holdout, err := evaluation.Holdout(modelTable, []evaluation.Candidate{
		{Name: "baseline", Formula: baseForm},
		{Name: "selected", Formula: selected.Model.Formula},
	}, p.TrainFraction, p.Seed)
	if err != nil {
		return nil, stageErr("holdout", err)
	}
	res.Holdout = holdout
	rep.AddHoldout(holdout)

	logger.Info("study complete",
		log.FormulaKey, selected.Model.Formula.String(),
		log.LambdaKey, boxcox.Lambda,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

// baselineFormula is the additive model every refinement starts from:
// Rate on log(Votes), Duration, Date, the certificate, the five
// content-advisory levels and one indicator per genre.
func baselineFormula(genres []string) *formula.Formula {
	terms := []formula.Term{
		formula.Log(dataset.ColVotes),
		formula.Num(dataset.ColDuration),
		formula.Num(dataset.ColDate),
		formula.Cat(dataset.ColCertificate),
		formula.Cat(dataset.ColNudity),
		formula.Cat(dataset.ColViolence),
		formula.Cat(dataset.ColProfanity),
		formula.Cat(dataset.ColAlcohol),
		formula.Cat(dataset.ColFrightening),
	}
	for _, g := range genres {
		terms = append(terms, formula.Num(g))
	}
	return formula.New(dataset.ColRate, terms...)
}

// interactionFormula widens base with the pairwise interactions of the
// numeric block. The categorical predictors stay additive.
func interactionFormula(base *formula.Formula) *formula.Formula {
	terms := append([]formula.Term(nil), base.Terms...)
	terms = append(terms, formula.Pairwise(
		formula.Log(dataset.ColVotes),
		formula.Num(dataset.ColDuration),
		formula.Num(dataset.ColDate),
	)...)
	return formula.New(base.Response, terms...)
}

// normalitySection runs the Shapiro-Wilk test on m's residuals. Sample
// sizes outside the approximation's range return a nil section.
func normalitySection(m *regression.Model, alpha float64, logger log.Logger) (*report.NormalitySection, error) {
	n := len(m.Residuals)
	if n < 3 || n > shapiroMaxN {
		logger.Warn("normality test skipped",
			log.OperationKey, log.OperationEvaluate,
			log.SamplesKey, n,
		)
		return nil, nil
	}
	w, pv, err := diagnostics.ShapiroWilk(m.Residuals)
	if err != nil {
		return nil, err
	}
	return &report.NormalitySection{
		W:        w,
		P:        pv,
		Alpha:    alpha,
		Rejected: diagnostics.NormalityRejected(pv, alpha),
	}, nil
}

func stageErr(stage string, err error) error {
	return regressErrors.NewStageError("analysis.Run", stage, err)
}
