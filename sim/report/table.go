// report/table.go
//
// CSV sink for the problem instance's arm table.

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/varucb-sim/varucb-sim/sim"
)

// WriteArmTable writes the instance's arm table to path as CSV: one row
// per arm (index, true mean, true variance), arm index ascending.
func WriteArmTable(path string, inst *sim.ProblemInstance) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating arm table %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Errorf("Error closing arm table %s: %v", path, closeErr)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"arm", "mean", "variance"}); err != nil {
		return fmt.Errorf("writing arm table header: %w", err)
	}
	for _, rec := range inst.Records() {
		row := []string{
			strconv.Itoa(rec.Arm),
			strconv.FormatFloat(rec.Mean, 'g', -1, 64),
			strconv.FormatFloat(rec.Variance, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing arm %d: %w", rec.Arm, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing arm table: %w", err)
	}

	logrus.Debugf("Wrote arm table to %s", path)
	return nil
}
