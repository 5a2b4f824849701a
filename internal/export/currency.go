package export

import (
	"fmt"
	"strings"
)

// FormatCurrency renders a rupee amount the way the dashboard displays it:
// crores and lakhs as scaled decimals, smaller amounts with Indian digit
// grouping.
func FormatCurrency(amount int64) string {
	switch {
	case amount >= 10000000:
		return fmt.Sprintf("₹%.2f Cr", float64(amount)/10000000)
	case amount >= 100000:
		return fmt.Sprintf("₹%.2f Lakhs", float64(amount)/100000)
	default:
		return "₹" + groupIndian(amount)
	}
}

// groupIndian inserts Indian-style digit separators: the last three digits
// form one group, every two digits after that.
func groupIndian(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)

	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(append(groups, tail), ",")
	}

	if negative {
		return "-" + digits
	}
	return digits
}
