package compensation

import (
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LoanDeduction computes how much of amount is redirected to loan repayment:
// loanPercentage of the amount, never more than what is still pending.
func LoanDeduction(loan domain.Loan, amount decimal.Decimal) decimal.Decimal {
	if !loan.TotalPending.IsPositive() || !amount.IsPositive() {
		return decimal.Zero
	}
	potential := amount.Mul(loan.Percentage).Div(hundred).Round(2)
	deduction := decimal.Min(potential, loan.TotalPending)
	if !deduction.IsPositive() {
		return decimal.Zero
	}
	return deduction
}

// interceptLoan runs on every crediting path. The amount has already been
// credited to the category wallet; the recovered part is taken back out of it
// and moved from pending to collected. Returns the recovered amount.
func (uc *DefaultCompensationUsecase) interceptLoan(
	m *domain.Member,
	c *change,
	amount decimal.Decimal,
	category domain.Category,
) decimal.Decimal {
	deduction := LoanDeduction(m.Loan, amount)
	if deduction.IsZero() {
		return decimal.Zero
	}
	wallet, ok := domain.WalletFor(category)
	if !ok {
		return decimal.Zero
	}

	m.Loan.TotalCollected = m.Loan.TotalCollected.Add(deduction)
	m.Loan.TotalPending = m.Loan.TotalPending.Sub(deduction)
	m.AddWallet(wallet, deduction.Neg())

	c.entries = append(c.entries, uc.newEntry(
		m.ID,
		deduction,
		domain.DirectionDebit,
		wallet,
		domain.CategoryLoanRecovery,
		fmt.Sprintf("loan recovery from %s income", category),
	))
	return deduction
}
