// report/traces.go
//
// CSV sink for aggregated regret traces.

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/varucb-sim/varucb-sim/sim"
)

// WriteRegretTraces writes the aggregated traces to path as CSV. Columns:
// round, then a mean and std column per policy, in result order. All
// traces must share the same length (one batch, one horizon).
func WriteRegretTraces(path string, results []sim.AggregatedRegret) error {
	if len(results) == 0 {
		return fmt.Errorf("no aggregated traces to write")
	}
	rounds := len(results[0].Mean)
	for _, agg := range results {
		if len(agg.Mean) != rounds || len(agg.Std) != rounds {
			return fmt.Errorf("trace length mismatch for policy %s", agg.Policy)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Errorf("Error closing trace file %s: %v", path, closeErr)
		}
	}()

	w := csv.NewWriter(file)
	header := []string{"round"}
	for _, agg := range results {
		header = append(header, agg.Policy+"_mean", agg.Policy+"_std")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}

	row := make([]string, len(header))
	for t := 0; t < rounds; t++ {
		row[0] = strconv.Itoa(t)
		col := 1
		for _, agg := range results {
			row[col] = strconv.FormatFloat(agg.Mean[t], 'g', -1, 64)
			row[col+1] = strconv.FormatFloat(agg.Std[t], 'g', -1, 64)
			col += 2
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing round %d: %w", t, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing trace file: %w", err)
	}

	logrus.Debugf("Wrote %d aggregated traces to %s", len(results), path)
	return nil
}
