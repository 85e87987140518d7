package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// CleanReport counts the rows each cleaning rule dropped. Data-quality
// defects are never fatal; they are filtered row by row and accounted
// for here so a run can be audited.
type CleanReport struct {
	Input            int // rows in
	MissingDropped   int // any field empty
	SentinelDropped  int // "No Rate" in rating or an advisory field
	NonFilmDropped   int // type discriminator != Film
	DuplicateDropped int // exact duplicate of an earlier row
	CoercionDropped  int // numeric field failed to parse
	Output           int // rows out
}

// TotalDropped returns the number of rows removed by all rules.
func (r CleanReport) TotalDropped() int {
	return r.MissingDropped + r.SentinelDropped + r.NonFilmDropped +
		r.DuplicateDropped + r.CoercionDropped
}

func (r CleanReport) String() string {
	return fmt.Sprintf(
		"cleaned %d -> %d rows (missing %d, sentinel %d, non-film %d, duplicate %d, unparseable %d)",
		r.Input, r.Output, r.MissingDropped, r.SentinelDropped,
		r.NonFilmDropped, r.DuplicateDropped, r.CoercionDropped)
}

// Clean applies the row filters in order and coerces the surviving rows
// into a typed Table:
//
//  1. drop rows with any empty field
//  2. drop rows where the rating or an advisory field is "No Rate"
//  3. keep only rows whose Type is "Film"; the Type and Episodes
//     fields are not carried into the output
//  4. drop exact duplicates of earlier rows, keeping first occurrence
//  5. parse Rate, Votes (grouping commas stripped), Duration and Date
//     as numbers, dropping rows that fail to parse
//
// The returned Table holds numeric columns for Rate, Votes, Duration and
// Date, and categorical columns for Certificate, the five advisory
// fields and Genre. Order among surviving rows is preserved.
func Clean(records []Record) (*Table, CleanReport, error) {
	start := time.Now()
	report := CleanReport{Input: len(records)}

	if len(records) == 0 {
		return nil, report, regressErrors.Wrap(regressErrors.ErrEmptyData, "dataset.Clean")
	}

	var (
		rate, votes, duration, date          []float64
		certificate, genre                   []string
		nudity, violence, profanity, alcohol []string
		frightening                          []string
		seen                                 = make(map[string]struct{})
	)

	for _, rec := range records {
		trimmed := rec
		trimFields(&trimmed)

		if hasMissingField(&trimmed) {
			report.MissingDropped++
			continue
		}
		if hasSentinel(&trimmed) {
			report.SentinelDropped++
			continue
		}
		if trimmed.Type != typeFilm {
			report.NonFilmDropped++
			continue
		}

		// Duplicate detection runs over the retained fields only, since
		// Type and Episodes are dropped from the output. A row counts as
		// seen even if coercion drops it afterwards; later copies are
		// duplicates either way.
		key := dedupKey(&trimmed)
		if _, dup := seen[key]; dup {
			report.DuplicateDropped++
			continue
		}
		seen[key] = struct{}{}

		rateV, err := strconv.ParseFloat(trimmed.Rate, 64)
		if err != nil {
			report.CoercionDropped++
			continue
		}
		votesV, err := strconv.ParseFloat(strings.ReplaceAll(trimmed.Votes, ",", ""), 64)
		if err != nil {
			report.CoercionDropped++
			continue
		}
		durationV, err := strconv.ParseFloat(trimmed.Duration, 64)
		if err != nil {
			report.CoercionDropped++
			continue
		}
		dateV, err := strconv.ParseFloat(trimmed.Date, 64)
		if err != nil {
			report.CoercionDropped++
			continue
		}

		rate = append(rate, rateV)
		votes = append(votes, votesV)
		duration = append(duration, durationV)
		date = append(date, dateV)
		certificate = append(certificate, trimmed.Certificate)
		nudity = append(nudity, trimmed.Nudity)
		violence = append(violence, trimmed.Violence)
		profanity = append(profanity, trimmed.Profanity)
		alcohol = append(alcohol, trimmed.Alcohol)
		frightening = append(frightening, trimmed.Frightening)
		genre = append(genre, trimmed.Genre)
	}

	report.Output = len(rate)

	logger := log.GetLoggerWithName("dataset")
	logger.Info("clean complete",
		log.OperationKey, log.OperationClean,
		log.RowsKey, report.Output,
		log.DroppedKey, report.TotalDropped(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	logger.Debug("drop counts by rule",
		"missing", report.MissingDropped,
		"sentinel", report.SentinelDropped,
		"non_film", report.NonFilmDropped,
		"duplicate", report.DuplicateDropped,
		"unparseable", report.CoercionDropped,
	)

	if report.Output == 0 {
		return nil, report, regressErrors.NewValueError("dataset.Clean", "no rows survived filtering")
	}

	table, err := NewTable(
		Column{Name: ColRate, Floats: rate},
		Column{Name: ColVotes, Floats: votes},
		Column{Name: ColDuration, Floats: duration},
		Column{Name: ColDate, Floats: date},
		Column{Name: ColCertificate, Labels: certificate},
		Column{Name: ColNudity, Labels: nudity},
		Column{Name: ColViolence, Labels: violence},
		Column{Name: ColProfanity, Labels: profanity},
		Column{Name: ColAlcohol, Labels: alcohol},
		Column{Name: ColFrightening, Labels: frightening},
		Column{Name: ColGenre, Labels: genre},
	)
	if err != nil {
		return nil, report, regressErrors.Wrap(err, "dataset.Clean")
	}
	return table, report, nil
}

func trimFields(r *Record) {
	r.Rate = strings.TrimSpace(r.Rate)
	r.Votes = strings.TrimSpace(r.Votes)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Certificate = strings.TrimSpace(r.Certificate)
	r.Nudity = strings.TrimSpace(r.Nudity)
	r.Violence = strings.TrimSpace(r.Violence)
	r.Profanity = strings.TrimSpace(r.Profanity)
	r.Alcohol = strings.TrimSpace(r.Alcohol)
	r.Frightening = strings.TrimSpace(r.Frightening)
	r.Genre = strings.TrimSpace(r.Genre)
	r.Date = strings.TrimSpace(r.Date)
	r.Type = strings.TrimSpace(r.Type)
	r.Episodes = strings.TrimSpace(r.Episodes)
}

func hasMissingField(r *Record) bool {
	for _, f := range r.fields() {
		if f == "" {
			return true
		}
	}
	return false
}

func hasSentinel(r *Record) bool {
	if r.Rate == SentinelNoRate {
		return true
	}
	for _, v := range []string{r.Nudity, r.Violence, r.Profanity, r.Alcohol, r.Frightening} {
		if v == SentinelNoRate {
			return true
		}
	}
	return false
}

// dedupKey joins the retained fields with an unprintable separator so
// two rows compare equal exactly when every kept field matches.
func dedupKey(r *Record) string {
	return strings.Join([]string{
		r.Rate, r.Votes, r.Duration, r.Certificate,
		r.Nudity, r.Violence, r.Profanity, r.Alcohol, r.Frightening,
		r.Genre, r.Date,
	}, "\x1f")
}
