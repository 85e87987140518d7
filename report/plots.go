package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sawruhv/Less-Stress-More-Regress/diagnostics"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
)

// SaveResidualsVsFitted writes a residuals-vs-fitted scatter with a
// zero reference line.
func SaveResidualsVsFitted(path string, m *regression.Model) error {
	s := diagnostics.ResidualsVsFitted(m)

	p := plot.New()
	p.Title.Text = "Residuals vs Fitted"
	p.X.Label.Text = "Fitted values"
	p.Y.Label.Text = "Residuals"

	scatter, err := plotter.NewScatter(xys(s))
	if err != nil {
		return regressErrors.Wrap(err, "report.SaveResidualsVsFitted")
	}
	scatter.Color = plotter.DefaultLineStyle.Color
	p.Add(scatter)

	lo, hi := bounds(s.X)
	zero, err := plotter.NewLine(plotter.XYs{{X: lo, Y: 0}, {X: hi, Y: 0}})
	if err != nil {
		return regressErrors.Wrap(err, "report.SaveResidualsVsFitted")
	}
	zero.Width = vg.Points(1)
	p.Add(zero)

	return savePlot(p, path)
}

// SaveQQ writes a normal quantile-quantile plot of the standardized
// residuals with the identity reference line.
func SaveQQ(path string, m *regression.Model) error {
	q := diagnostics.QQ(m)

	p := plot.New()
	p.Title.Text = "Normal Q-Q"
	p.X.Label.Text = "Theoretical quantiles"
	p.Y.Label.Text = "Standardized residuals"

	scatter, err := plotter.NewScatter(xys(q))
	if err != nil {
		return regressErrors.Wrap(err, "report.SaveQQ")
	}
	scatter.Color = plotter.DefaultLineStyle.Color
	p.Add(scatter)

	lo, hi := bounds(q.X)
	ident, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return regressErrors.Wrap(err, "report.SaveQQ")
	}
	ident.Width = vg.Points(1)
	p.Add(ident)

	return savePlot(p, path)
}

// SaveBoxCoxProfile writes the profile log-likelihood curve with a
// vertical marker at the selected exponent.
func SaveBoxCoxProfile(path string, lambdas, logLik []float64, selected float64) error {
	if len(lambdas) == 0 || len(lambdas) != len(logLik) {
		return regressErrors.NewValueError("report.SaveBoxCoxProfile", "empty or mismatched profile")
	}

	p := plot.New()
	p.Title.Text = "Box-Cox profile log-likelihood"
	p.X.Label.Text = "lambda"
	p.Y.Label.Text = "profile log-likelihood"

	pts := make(plotter.XYs, len(lambdas))
	for i := range lambdas {
		pts[i].X = lambdas[i]
		pts[i].Y = logLik[i]
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return regressErrors.Wrap(err, "report.SaveBoxCoxProfile")
	}
	curve.Width = vg.Points(2)
	p.Add(curve)
	p.Legend.Add("profile", curve)

	lo, hi := bounds(logLik)
	marker, err := plotter.NewLine(plotter.XYs{{X: selected, Y: lo}, {X: selected, Y: hi}})
	if err != nil {
		return regressErrors.Wrap(err, "report.SaveBoxCoxProfile")
	}
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(marker)

	return savePlot(p, path)
}

func savePlot(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return regressErrors.Wrap(err, "report: save plot")
	}
	log.GetLoggerWithName("report").Info("Plot written",
		log.OperationKey, log.OperationRender,
		log.PathKey, path,
	)
	return nil
}

func xys(s diagnostics.ScatterSeries) plotter.XYs {
	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}
	return pts
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
