package cart

// DefaultServiceFeePercent matches the platform-wide service fee.
const DefaultServiceFeePercent = 10

// TipSelection is either a percent of the subtotal or a literal
// amount, never both. Choosing one clears the other.
type TipSelection struct {
	Percent int   `json:"percent,omitempty"`
	Custom  int64 `json:"custom,omitempty"`
}

func (t *TipSelection) SelectPercent(percent int) {
	t.Percent = percent
	t.Custom = 0
}

func (t *TipSelection) SetCustomAmount(amount int64) {
	t.Custom = amount
	t.Percent = 0
}

func (t TipSelection) Amount(subtotal int64) int64 {
	if t.Percent > 0 {
		return subtotal * int64(t.Percent) / 100
	}
	return t.Custom
}

// Totals are always derived, never stored. Recompute after every cart
// mutation; stale aggregates are the only way this goes wrong.
type Totals struct {
	Subtotal          int64 `json:"subtotal"`
	ServiceFeePercent int   `json:"service_fee_percent"`
	ServiceFee        int64 `json:"service_fee"`
	Tip               int64 `json:"tip"`
	Total             int64 `json:"total"`
}

// CheckTotals is the pre-checkout "my check" view: subtotal plus
// service fee, tips not collected yet.
func CheckTotals(lines []Line, feePercent int) Totals {
	subtotal := Subtotal(lines)
	fee := subtotal * int64(feePercent) / 100
	return Totals{
		Subtotal:          subtotal,
		ServiceFeePercent: feePercent,
		ServiceFee:        fee,
		Total:             subtotal + fee,
	}
}

// CheckoutTotals is the paying view: subtotal, service fee and the
// chosen tip.
func CheckoutTotals(lines []Line, feePercent int, tip TipSelection) Totals {
	totals := CheckTotals(lines, feePercent)
	totals.Tip = tip.Amount(totals.Subtotal)
	totals.Total += totals.Tip
	return totals
}

func Subtotal(lines []Line) int64 {
	var sum int64
	for _, line := range lines {
		sum += line.Price * int64(line.Quantity)
	}
	return sum
}
