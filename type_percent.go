package finview

import "fmt"

// Percent is a percentage value, e.g. Percent(12.5) is 12.5%.
type Percent float64

// DiscountOf returns the discount of a price against a fair target value:
// how far, in percent, the price sits below the target. A price above the
// target yields a negative discount (a premium).
func DiscountOf(price, target float64) (Percent, error) {
	if target == 0 {
		return 0, fmt.Errorf("cannot compute discount against a zero target")
	}
	return Percent(100 * (target - price) / target), nil
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString formats the percent with an explicit sign, and a zero value
// as "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
