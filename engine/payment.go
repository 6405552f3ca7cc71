package engine

import (
	"fmt"
	"math"
	"strconv"
)

// Member is the minimal member info needed by the payment adapters.
type Member struct {
	UserID      string
	DisplayName string
}

// PayerEntry is a manual-mode payer with the amount they put in.
type PayerEntry struct {
	UserID string
	Amount float64
}

// MemberOwed is one member's obligation in either payment mode. A negative
// OwedAmount in manual mode means the member overpaid and is owed back.
type MemberOwed struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	OwedAmount  float64 `json:"owed_amount"`
	HasPaid     bool    `json:"has_paid"`
}

// ManualPaymentResult reports per-member obligations plus whether the
// entered payer amounts cover the bill. Delta is entered total minus
// required total; callers block finalization until it is within tolerance.
type ManualPaymentResult struct {
	Payers   []PayerEntry `json:"-"`
	OwedList []MemberOwed `json:"owed_list"`
	IsValid  bool         `json:"is_valid"`
	Delta    float64      `json:"delta"`
}

// EqualPayment computes the equal-mode obligation list: every member owes
// an identical share of the total, and members in paidMembers are flagged
// as having handed over their full share.
func EqualPayment(totalAmount float64, members []Member, paidMembers map[string]bool) []MemberOwed {
	if len(members) == 0 {
		return []MemberOwed{}
	}
	perPerson := totalAmount / float64(len(members))

	owed := make([]MemberOwed, len(members))
	for i, m := range members {
		owed[i] = MemberOwed{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			OwedAmount:  roundTwo(perPerson),
			HasPaid:     paidMembers[m.UserID],
		}
	}
	return owed
}

// ManualPayment computes manual-mode obligations. Each payer's net is their
// equal share minus what they entered; everyone else owes the full share.
func ManualPayment(totalAmount float64, members []Member, payers []PayerEntry) ManualPaymentResult {
	var payerTotal float64
	for _, p := range payers {
		payerTotal += p.Amount
	}
	delta := roundTwo(payerTotal - totalAmount)

	result := ManualPaymentResult{
		Payers:  payers,
		IsValid: math.Abs(delta) < settledTolerance,
		Delta:   delta,
	}

	paidBy := make(map[string]float64)
	for _, p := range payers {
		if p.Amount > 0 {
			paidBy[p.UserID] = p.Amount
		}
	}

	var share float64
	if len(members) > 0 {
		share = totalAmount / float64(len(members))
	}

	result.OwedList = make([]MemberOwed, len(members))
	for i, m := range members {
		paid, isPayer := paidBy[m.UserID]
		result.OwedList[i] = MemberOwed{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			OwedAmount:  roundTwo(share - paid),
			HasPaid:     isPayer,
		}
	}
	return result
}

// ManualDebts derives the pairwise transfers for manual mode: payers are
// credited what they put in, every member owes the equal share, and the
// resulting balance map runs through the greedy minimization.
func ManualDebts(totalAmount float64, members []Member, payers []PayerEntry) []SimplifiedDebt {
	if len(members) == 0 || len(payers) == 0 {
		return nil
	}

	share := totalAmount / float64(len(members))
	balances := make(map[string]float64)

	for _, p := range payers {
		balances[p.UserID] += p.Amount
	}
	for _, m := range members {
		balances[m.UserID] -= share
	}

	return MinimizeDebts(balances)
}

// ValidatePaymentAmount checks an amount as entered in a form field. An
// empty string means "not yet entered" and is accepted as a no-op; anything
// else must parse as a non-negative number.
func ValidatePaymentAmount(value string) error {
	if value == "" {
		return nil
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return fmt.Errorf("must be a valid number")
	}
	if num < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	return nil
}
