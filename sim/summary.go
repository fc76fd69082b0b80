// sim/summary.go
package sim

import "fmt"

// PrintSummary displays the batch's headline numbers at the end of a run:
// the problem instance's best arm and the final mean cumulative regret
// (with its spread across trials) per policy.
func PrintSummary(inst *ProblemInstance, results []AggregatedRegret, trials int) {
	fmt.Println("=== Experiment Summary ===")
	fmt.Printf("Arms                 : %d\n", inst.Arms())
	fmt.Printf("Best arm             : %d (mean %.4f)\n", inst.BestArm, inst.Means[inst.BestArm])
	fmt.Printf("Trials per policy    : %d\n", trials)
	for _, agg := range results {
		last := len(agg.Mean) - 1
		fmt.Printf("%-20s : final regret %.2f (std %.2f)\n", agg.Policy, agg.Mean[last], agg.Std[last])
	}
}
