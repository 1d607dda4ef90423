package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/weekplan/internal/domain"
)

// PlanSuffix marks plan documents inside the plan directory.
const PlanSuffix = ".xml"

// NormalizePlanID trims whitespace and an optional ".xml" suffix and rejects
// identifiers that cannot name a file inside the plan directory.
func NormalizePlanID(id string) (string, error) {
	norm := strings.TrimSuffix(strings.TrimSpace(id), PlanSuffix)
	switch {
	case norm == "",
		strings.ContainsAny(norm, `/\`),
		strings.Contains(norm, ".."),
		strings.HasPrefix(norm, "."):
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPlanID, id)
	}
	return norm, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
