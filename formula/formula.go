// Package formula declares regression model structure: a response
// column plus an ordered list of predictor terms, each tagged as
// numeric, log-transformed, categorical, or a two-way interaction.
//
// Every modeling stage consumes the same Formula value instead of
// re-listing predictors, so refinements (removing a term, swapping the
// response) derive new Formula values from old ones:
//
//	f := formula.New("Rate",
//	    formula.Num("Votes"),
//	    formula.Log("Duration"),
//	    formula.Cat("Certificate"),
//	    formula.Inter(formula.Num("Votes"), formula.Cat("Certificate")),
//	)
//	design, err := f.Build(table)
//
// Build expands the terms against a dataset table into a design matrix
// with a leading intercept column; categorical terms become dummy
// columns against a first-seen baseline level.
package formula

import (
	"strings"
)

// TermKind tags how a predictor term enters the design matrix.
type TermKind int

const (
	// KindNumeric is a numeric column used as-is.
	KindNumeric TermKind = iota
	// KindLog is the natural logarithm of a numeric column.
	KindLog
	// KindCategorical expands a label column into dummy columns against
	// a baseline level.
	KindCategorical
	// KindInteraction is the elementwise product of two base terms.
	KindInteraction
)

// Term is one predictor in a formula. Base terms (numeric, log,
// categorical) reference a table column; interaction terms reference
// two base terms.
type Term struct {
	Kind   TermKind
	Column string // base terms
	Left   *Term  // interaction factors
	Right  *Term
}

// Num declares a numeric predictor.
func Num(column string) Term {
	return Term{Kind: KindNumeric, Column: column}
}

// Log declares the natural log of a numeric predictor.
func Log(column string) Term {
	return Term{Kind: KindLog, Column: column}
}

// Cat declares a categorical predictor to be dummy-coded.
func Cat(column string) Term {
	return Term{Kind: KindCategorical, Column: column}
}

// Inter declares the two-way interaction of two base terms.
func Inter(left, right Term) Term {
	l, r := left, right
	return Term{Kind: KindInteraction, Left: &l, Right: &r}
}

// Pairwise expands a subset of base terms into the full second-order
// set over that subset: every term itself plus every distinct pairwise
// interaction, in declaration order.
func Pairwise(terms ...Term) []Term {
	out := make([]Term, 0, len(terms)+len(terms)*(len(terms)-1)/2)
	out = append(out, terms...)
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			out = append(out, Inter(terms[i], terms[j]))
		}
	}
	return out
}

// String renders the term the way the report prints it.
func (t Term) String() string {
	switch t.Kind {
	case KindLog:
		return "log(" + t.Column + ")"
	case KindInteraction:
		return t.Left.String() + ":" + t.Right.String()
	default:
		return t.Column
	}
}

// Equal reports structural equality of two terms.
func (t Term) Equal(o Term) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == KindInteraction {
		return t.Left.Equal(*o.Left) && t.Right.Equal(*o.Right)
	}
	return t.Column == o.Column
}

// Formula is a response column plus ordered predictor terms. Formula
// values are treated as immutable; refinement methods return copies.
type Formula struct {
	Response string
	Terms    []Term
}

// New builds a formula for the given response and predictor terms.
func New(response string, terms ...Term) *Formula {
	return &Formula{
		Response: response,
		Terms:    append([]Term(nil), terms...),
	}
}

// WithResponse returns a copy of the formula with a different response
// column, keeping the predictor structure. Used when refitting the
// selected structure against a transformed response.
func (f *Formula) WithResponse(response string) *Formula {
	return New(response, f.Terms...)
}

// WithoutTerm returns a copy of the formula lacking the term at index i.
func (f *Formula) WithoutTerm(i int) *Formula {
	terms := make([]Term, 0, len(f.Terms)-1)
	for j, t := range f.Terms {
		if j != i {
			terms = append(terms, t)
		}
	}
	return New(f.Response, terms...)
}

// RemovableTerms returns the indices of terms eligible for removal
// under the marginality rule: a base term stays locked while any
// interaction term containing it remains in the formula.
func (f *Formula) RemovableTerms() []int {
	var out []int
	for i, t := range f.Terms {
		if t.Kind == KindInteraction {
			out = append(out, i)
			continue
		}
		locked := false
		for _, other := range f.Terms {
			if other.Kind != KindInteraction {
				continue
			}
			if other.Left.Equal(t) || other.Right.Equal(t) {
				locked = true
				break
			}
		}
		if !locked {
			out = append(out, i)
		}
	}
	return out
}

// String renders the formula in response ~ term + term form.
func (f *Formula) String() string {
	if len(f.Terms) == 0 {
		return f.Response + " ~ 1"
	}
	parts := make([]string, len(f.Terms))
	for i, t := range f.Terms {
		parts[i] = t.String()
	}
	return f.Response + " ~ " + strings.Join(parts, " + ")
}
