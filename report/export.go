package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/sawruhv/Less-Stress-More-Regress/diagnostics"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

// WriteDiagnosticsCSV exports one row per observation of a model's
// diagnostic quantities: fitted value, raw and standardized residual,
// leverage, and Cook's distance.
func WriteDiagnosticsCSV(path string, m *regression.Model) (err error) {
	f, err := os.Create(path) // #nosec G304 -- caller-controlled output path
	if err != nil {
		return regressErrors.Wrap(err, "report.WriteDiagnosticsCSV")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = regressErrors.Wrap(cerr, "report.WriteDiagnosticsCSV")
		}
	}()

	std := diagnostics.StandardizedResiduals(m)
	inf := diagnostics.ComputeInfluence(m)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"observation", "fitted", "residual", "standardized", "leverage", "cooks_distance"}); err != nil {
		return regressErrors.Wrap(err, "report.WriteDiagnosticsCSV")
	}
	for i := 0; i < m.N; i++ {
		row := []string{
			strconv.Itoa(i),
			formatFloat(m.Fitted[i]),
			formatFloat(m.Residuals[i]),
			formatFloat(std[i]),
			formatFloat(m.Leverage[i]),
			formatFloat(inf.CooksDistance[i]),
		}
		if err := w.Write(row); err != nil {
			return regressErrors.Wrap(err, "report.WriteDiagnosticsCSV")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return regressErrors.Wrap(err, "report.WriteDiagnosticsCSV")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
