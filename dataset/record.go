// Package dataset loads the raw movie table, cleans it into a typed
// column store, and provides the seeded train/test split used for
// evaluation.
//
// The flow through this package is linear:
//
//	records, err := dataset.Load("movies.csv")
//	table, report, err := dataset.Clean(records)
//	train, test, err := dataset.Split(table, 0.85, seed)
//
// Clean applies the row filters in a fixed order (missing fields,
// "No Rate" sentinels, film-only, duplicates, numeric coercion) and
// reports how many rows each rule dropped, so a run is auditable.
package dataset

// Column names of the raw input file. Files may carry extra columns;
// they are ignored.
const (
	ColRate        = "Rate"
	ColVotes       = "Votes"
	ColDuration    = "Duration"
	ColCertificate = "Certificate"
	ColNudity      = "Nudity"
	ColViolence    = "Violence"
	ColProfanity   = "Profanity"
	ColAlcohol     = "Alcohol"
	ColFrightening = "Frightening"
	ColGenre       = "Genre"
	ColDate        = "Date"
	ColType        = "Type"
	ColEpisodes    = "Episodes"
)

// SentinelNoRate marks an unrated observation in the rating and advisory
// columns. Rows carrying it are dropped before numeric coercion.
const SentinelNoRate = "No Rate"

// typeFilm is the only type discriminator value kept by Clean.
const typeFilm = "Film"

// requiredColumns are the headers Load insists on, in input order.
var requiredColumns = []string{
	ColRate, ColVotes, ColDuration, ColCertificate,
	ColNudity, ColViolence, ColProfanity, ColAlcohol, ColFrightening,
	ColGenre, ColDate, ColType, ColEpisodes,
}

// advisoryColumns are the content-advisory fields checked for the
// "No Rate" sentinel alongside the rating itself.
var advisoryColumns = []string{
	ColNudity, ColViolence, ColProfanity, ColAlcohol, ColFrightening,
}

// Record is one raw row of the input file, untyped. Fields hold the
// cell text exactly as read; Clean performs all trimming and coercion.
type Record struct {
	Rate        string
	Votes       string
	Duration    string
	Certificate string
	Nudity      string
	Violence    string
	Profanity   string
	Alcohol     string
	Frightening string
	Genre       string
	Date        string
	Type        string
	Episodes    string
}

// fields returns the record's values in requiredColumns order.
func (r *Record) fields() []string {
	return []string{
		r.Rate, r.Votes, r.Duration, r.Certificate,
		r.Nudity, r.Violence, r.Profanity, r.Alcohol, r.Frightening,
		r.Genre, r.Date, r.Type, r.Episodes,
	}
}
