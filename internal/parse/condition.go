package parse

import (
	"strings"

	"github.com/taylorp5/dealwise/internal/model"
)

// Condition normalizes free text to a vehicle condition. Checks run in fixed
// priority order: new, then certified/cpo, then used/pre-owned. The order
// matters — "certified used" resolves to CPO because the certified check runs
// before the used check.
func Condition(text string) model.Condition {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "new"):
		return model.ConditionNew
	case strings.Contains(lower, "certified") || strings.Contains(lower, "cpo"):
		return model.ConditionCPO
	case strings.Contains(lower, "used") || strings.Contains(lower, "pre-owned"):
		return model.ConditionUsed
	default:
		return model.ConditionUnknown
	}
}
