package engine

import "math"

// MonthlyPayment computes the payment on a fixed-rate loan using the
// standard amortization formula M = L·r·(1+r)^n / ((1+r)^n − 1), where r is
// the monthly rate and n the term in months. A zero rate degenerates to
// straight principal division.
func MonthlyPayment(loanAmount, annualRatePct float64, termYears int) float64 {
	if loanAmount <= 0 || termYears <= 0 {
		return 0
	}
	n := float64(termYears * 12)
	r := annualRatePct / 100 / 12
	if r == 0 {
		return loanAmount / n
	}
	growth := math.Pow(1+r, n)
	return loanAmount * r * growth / (growth - 1)
}

// FirstPaymentSplit returns the principal and interest portions of the
// first scheduled payment.
func FirstPaymentSplit(loanAmount, annualRatePct float64, termYears int) (principal, interest float64) {
	payment := MonthlyPayment(loanAmount, annualRatePct, termYears)
	if payment == 0 {
		return 0, 0
	}
	interest = loanAmount * annualRatePct / 100 / 12
	return payment - interest, interest
}

// PrincipalPaid walks the amortization schedule and returns the total
// principal retired over the first m payments.
func PrincipalPaid(loanAmount, annualRatePct float64, termYears, m int) float64 {
	if loanAmount <= 0 || termYears <= 0 || m <= 0 {
		return 0
	}
	n := termYears * 12
	if m > n {
		m = n
	}
	payment := MonthlyPayment(loanAmount, annualRatePct, termYears)
	r := annualRatePct / 100 / 12
	balance := loanAmount
	for i := 0; i < m; i++ {
		principal := payment - balance*r
		if principal > balance {
			principal = balance
		}
		balance -= principal
	}
	return loanAmount - balance
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// roundDollars rounds to the nearest whole dollar.
func roundDollars(v float64) float64 {
	return math.Round(v)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
