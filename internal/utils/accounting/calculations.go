package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

var (
	// lineEpsilon is the threshold below which a line amount is treated as zero
	// during sanitation.
	lineEpsilon = decimal.NewFromFloat(0.00001)

	// balanceTolerance is the maximum allowed difference between the debit and
	// credit totals of a journal entry.
	balanceTolerance = decimal.NewFromFloat(0.01)

	// closeEpsilon is the residual outstanding below which a loan counts as
	// fully repaid.
	closeEpsilon = decimal.NewFromFloat(0.01)
)

// RoundCents rounds a monetary amount to 2 decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SanitizeLines drops lines whose debit and credit are both below the
// sanitation epsilon. The survivors keep their relative order; their Sequence
// is reassigned to the position in the surviving slice.
func SanitizeLines(lines []domain.JournalLine) []domain.JournalLine {
	surviving := make([]domain.JournalLine, 0, len(lines))
	for _, line := range lines {
		if line.Debit.Abs().LessThan(lineEpsilon) && line.Credit.Abs().LessThan(lineEpsilon) {
			continue
		}
		line.Sequence = len(surviving)
		surviving = append(surviving, line)
	}
	return surviving
}

// SumLines totals the debit and credit sides of a set of lines, rounding each
// line to cents first.
func SumLines(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(RoundCents(line.Debit))
		credits = credits.Add(RoundCents(line.Credit))
	}
	return debits, credits
}

// IsBalanced reports whether the debit and credit totals agree within the
// balance tolerance.
func IsBalanced(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThanOrEqual(balanceTolerance)
}

// ComputePosition derives a loan's outstanding state from its principal, the
// accrued interest, and the cumulative repayments. Repayments are capped at
// principal + accrued interest to guard against historical overpay anomalies.
// Every step is rounded to cents.
func ComputePosition(principal, accruedInterest, totalRepayments decimal.Decimal) domain.LoanPosition {
	principal = RoundCents(principal)
	accruedInterest = RoundCents(accruedInterest)
	totalRepayments = RoundCents(totalRepayments)

	maxRepayable := principal.Add(accruedInterest)
	if totalRepayments.GreaterThan(maxRepayable) {
		totalRepayments = maxRepayable
	}

	interestPaid := decimal.Min(totalRepayments, accruedInterest)
	principalPaid := decimal.Min(principal, RoundCents(totalRepayments.Sub(interestPaid)))
	principalOutstanding := RoundCents(principal.Sub(principalPaid))
	interestOutstanding := RoundCents(accruedInterest.Sub(interestPaid))

	return domain.LoanPosition{
		Principal:            principal,
		AccruedInterest:      accruedInterest,
		TotalRepayments:      totalRepayments,
		InterestPaid:         interestPaid,
		PrincipalPaid:        principalPaid,
		PrincipalOutstanding: principalOutstanding,
		InterestOutstanding:  interestOutstanding,
		TotalOutstanding:     RoundCents(principalOutstanding.Add(interestOutstanding)),
	}
}

// AllocateRepayment splits an accepted repayment amount across the loan's
// outstanding interest (first) and principal (remainder). The caller must have
// verified amount <= position.TotalOutstanding.
func AllocateRepayment(position domain.LoanPosition, amount decimal.Decimal) domain.RepaymentAllocation {
	amount = RoundCents(amount)
	interestPortion := decimal.Min(amount, position.InterestOutstanding)
	principalPortion := decimal.Min(position.PrincipalOutstanding, RoundCents(amount.Sub(interestPortion)))

	newBalance := RoundCents(position.PrincipalOutstanding.Sub(principalPortion))
	newOutstanding := RoundCents(newBalance.Add(position.InterestOutstanding.Sub(interestPortion)))

	return domain.RepaymentAllocation{
		Amount:           amount,
		InterestPortion:  interestPortion,
		PrincipalPortion: principalPortion,
		NewBalance:       newBalance,
		NewOutstanding:   newOutstanding,
		Closes:           newOutstanding.Abs().LessThanOrEqual(closeEpsilon),
	}
}
