package analysis

import (
	"os"
	"path/filepath"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
	"github.com/sawruhv/Less-Stress-More-Regress/report"
)

// WriteArtifacts writes the study output into dir: the rendered report
// and its YAML export, a per-observation diagnostics table and a
// residuals-vs-fitted plus QQ plot for each fitted model, and the
// Box-Cox profile plot.
func (r *Result) WriteArtifacts(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return regressErrors.Wrap(err, "analysis.WriteArtifacts")
	}

	if err := r.Report.WriteText(filepath.Join(dir, "report.txt")); err != nil {
		return err
	}
	if err := r.Report.WriteYAML(filepath.Join(dir, "report.yaml")); err != nil {
		return err
	}

	models := []struct {
		name string
		m    *regression.Model
	}{
		{"baseline", r.Baseline},
		{"trimmed", r.Trimmed},
		{"boxcox", r.Transformed},
		{"selected", r.selectedModel()},
	}
	for _, entry := range models {
		if entry.m == nil {
			continue
		}
		if err := report.WriteDiagnosticsCSV(
			filepath.Join(dir, "diagnostics_"+entry.name+".csv"), entry.m); err != nil {
			return err
		}
		if err := report.SaveResidualsVsFitted(
			filepath.Join(dir, "residuals_"+entry.name+".png"), entry.m); err != nil {
			return err
		}
		if err := report.SaveQQ(
			filepath.Join(dir, "qq_"+entry.name+".png"), entry.m); err != nil {
			return err
		}
	}

	if r.BoxCox != nil && r.BoxCox.IsFitted() {
		lambdas, logLik, err := r.BoxCox.Profile()
		if err != nil {
			return err
		}
		if err := report.SaveBoxCoxProfile(
			filepath.Join(dir, "boxcox_profile.png"), lambdas, logLik, r.BoxCox.Lambda); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) selectedModel() *regression.Model {
	if r.Selection == nil {
		return nil
	}
	return r.Selection.Model
}
