package dataset

import (
	"fmt"
	"math/rand/v2"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// Split partitions the table's rows into disjoint train and test tables.
//
// The first floor(trainFraction * n) rows of a seeded permutation form
// the train set, the remainder the test set; together they cover every
// row exactly once. The same seed always reproduces the same partition.
//
// Errors:
//   - ValueError: if trainFraction is outside (0,1) or either side of
//     the split would be empty
func Split(t *Table, trainFraction float64, seed int64) (train, test *Table, err error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, nil, regressErrors.NewValueError("dataset.Split",
			fmt.Sprintf("train fraction %v outside (0,1)", trainFraction))
	}

	n := t.NumRows()
	trainSize := int(trainFraction * float64(n))
	if trainSize == 0 || trainSize == n {
		return nil, nil, regressErrors.NewValueError("dataset.Split",
			fmt.Sprintf("fraction %v leaves an empty partition for %d rows", trainFraction, n))
	}

	// #nosec G404 -- reproducible data partitioning, not cryptographic use
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	perm := r.Perm(n)

	train, err = t.Subset(perm[:trainSize])
	if err != nil {
		return nil, nil, regressErrors.Wrap(err, "dataset.Split: train")
	}
	test, err = t.Subset(perm[trainSize:])
	if err != nil {
		return nil, nil, regressErrors.Wrap(err, "dataset.Split: test")
	}

	log.GetLoggerWithName("dataset").Info("split complete",
		log.OperationKey, "split",
		"n_train", train.NumRows(),
		"n_test", test.NumRows(),
		"seed", seed,
	)
	return train, test, nil
}
