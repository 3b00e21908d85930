package service

import "fmt"

// BudgetWarning is the alert returned after recording an expense. It is the
// only feedback for the action; nothing is persisted.
type BudgetWarning struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// threshold maps a minimum consumption percentage to an alert tier.
// Templates take the category name as %[1]s and the percentage as %[2].1f.
type threshold struct {
	MinPct   float64
	Level    string
	Template string
}

// Evaluated top-down, first match wins. Bounds are inclusive.
var thresholds = []threshold{
	{100, "danger", "Budget %[1]s dépassé (%[2].1f%%)"},
	{90, "warning", "Attention — %[2].1f%% du budget %[1]s"},
	{70, "info", "Approche: %[2].1f%% du budget %[1]s"},
}

// EvaluateBudget computes the percentage of budget consumed and the matching
// alert tier, nil when consumption is below every threshold. A budget of
// zero (or less) always yields 0%, whatever the spend.
func EvaluateBudget(categoryName string, used, budget float64) (float64, *BudgetWarning) {
	var pct float64
	if budget > 0 {
		pct = used / budget * 100
	}
	for _, th := range thresholds {
		if pct >= th.MinPct {
			return pct, &BudgetWarning{
				Level:   th.Level,
				Message: fmt.Sprintf(th.Template, categoryName, pct),
			}
		}
	}
	return pct, nil
}
