package parse

import (
	"strconv"
	"strings"

	"github.com/pdmedical/crm-import/internal/model"
)

// Priority parses a sales priority label like "# 1" or "REMOVE anytime"
// into a rank and a status. Rank 0 means unranked. Labels that fail to
// parse or fall outside 1..3 are treated as unranked, not as errors.
func Priority(label string) (int, model.SalesStatus) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return 0, model.SalesStatusActive
	}

	if strings.Contains(l, "remove") {
		return 0, model.SalesStatusRemoved
	}

	n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(l, "#", "")))
	if err == nil && n >= 1 && n <= 3 {
		return n, model.SalesStatusActive
	}

	return 0, model.SalesStatusActive
}
