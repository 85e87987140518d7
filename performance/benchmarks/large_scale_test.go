// Package benchmarks exercises the pipeline stages at sizes well above
// the study dataset, so fit and selection costs stay visible as the
// packages evolve.
package benchmarks

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	"github.com/sawruhv/Less-Stress-More-Regress/formula"
	"github.com/sawruhv/Less-Stress-More-Regress/preprocessing"
	"github.com/sawruhv/Less-Stress-More-Regress/regression"
	"github.com/sawruhv/Less-Stress-More-Regress/selection"
)

// syntheticTable builds a table shaped like the cleaned movie data:
// a response driven by log votes and duration plus noise, with two
// categorical columns.
func syntheticTable(b *testing.B, n int) *dataset.Table {
	b.Helper()
	rng := rand.New(rand.NewPCG(42, 42))

	rate := make([]float64, n)
	votes := make([]float64, n)
	duration := make([]float64, n)
	date := make([]float64, n)
	cert := make([]string, n)
	violence := make([]string, n)

	for i := 0; i < n; i++ {
		votes[i] = float64(100 + rng.IntN(1_000_000))
		duration[i] = 60 + 120*rng.Float64()
		date[i] = float64(1950 + rng.IntN(70))
		if i%2 == 0 {
			cert[i] = "R"
		} else {
			cert[i] = "PG"
		}
		if i%3 == 0 {
			violence[i] = "Severe"
		} else {
			violence[i] = "Mild"
		}
		rate[i] = 1.5 + 0.4*math.Log(votes[i]) + 0.01*duration[i] + 0.5*rng.NormFloat64()
	}

	t, err := dataset.NewTable(
		dataset.Column{Name: "Rate", Floats: rate},
		dataset.Column{Name: "Votes", Floats: votes},
		dataset.Column{Name: "Duration", Floats: duration},
		dataset.Column{Name: "Date", Floats: date},
		dataset.Column{Name: "Certificate", Labels: cert},
		dataset.Column{Name: "Violence", Labels: violence},
	)
	if err != nil {
		b.Fatal(err)
	}
	return t
}

func additiveFormula() *formula.Formula {
	return formula.New("Rate",
		formula.Log("Votes"),
		formula.Num("Duration"),
		formula.Num("Date"),
		formula.Cat("Certificate"),
		formula.Cat("Violence"),
	)
}

func BenchmarkFit(b *testing.B) {
	for _, n := range []int{500, 5_000, 50_000} {
		b.Run(fmt.Sprintf("n_%d", n), func(b *testing.B) {
			table := syntheticTable(b, n)
			form := additiveFormula()
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := regression.Fit(table, form); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(n * 8 * 7))
		})
	}
}

func BenchmarkPredict(b *testing.B) {
	for _, n := range []int{500, 5_000, 50_000} {
		b.Run(fmt.Sprintf("n_%d", n), func(b *testing.B) {
			table := syntheticTable(b, n)
			m, err := regression.Fit(table, additiveFormula())
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := m.Predict(table); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBackwardSelection(b *testing.B) {
	table := syntheticTable(b, 2_000)
	base := additiveFormula()
	full := formula.New(base.Response, append(append([]formula.Term(nil), base.Terms...),
		formula.Pairwise(formula.Log("Votes"), formula.Num("Duration"), formula.Num("Date"))...)...)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := selection.Backward(table, full); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBoxCoxFit(b *testing.B) {
	for _, n := range []int{500, 5_000, 50_000} {
		b.Run(fmt.Sprintf("n_%d", n), func(b *testing.B) {
			table := syntheticTable(b, n)
			design, err := additiveFormula().Build(table)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				bc := preprocessing.NewBoxCoxTransformer()
				if err := bc.Fit(design.X, design.Y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGenreEncode(b *testing.B) {
	n := 50_000
	rng := rand.New(rand.NewPCG(42, 42))
	rate := make([]float64, n)
	genre := make([]string, n)
	pool := []string{"Action", "Drama", "Comedy, Drama", "Action, Sci-Fi", "Horror, Thriller"}
	for i := 0; i < n; i++ {
		rate[i] = rng.Float64() * 10
		genre[i] = pool[rng.IntN(len(pool))]
	}
	table, err := dataset.NewTable(
		dataset.Column{Name: "Rate", Floats: rate},
		dataset.Column{Name: "Genre", Labels: genre},
	)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc := preprocessing.NewGenreEncoder()
		if _, err := enc.FitTransform(table); err != nil {
			b.Fatal(err)
		}
	}
}
