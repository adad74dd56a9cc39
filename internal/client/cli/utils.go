package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseID reads a positive numeric id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func formatPrice(lo, hi float64) string {
	return fmt.Sprintf("£%s - £%s", formatNumber(lo), formatNumber(hi))
}

// formatMinutes renders a walking time, or N/A when it is unknown.
func formatMinutes(m *float64) string {
	if m == nil {
		return "N/A"
	}
	return formatNumber(*m)
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}
