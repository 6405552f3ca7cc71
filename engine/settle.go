package engine

import (
	"math"
	"sort"
)

// tolerance under which a balance is considered settled.
const settledTolerance = 0.01

// ExpenseParticipant is one member's share of one expense.
type ExpenseParticipant struct {
	ExpenseID  string
	UserID     string
	OwedAmount float64
}

// RoomPayment is the running total a member has actually handed over
// toward all expenses combined. At most one per member.
type RoomPayment struct {
	UserID     string
	PaidAmount float64
}

// SimplifiedDebt is a single directed transfer: FromUser pays ToUser.
type SimplifiedDebt struct {
	FromUser string  `json:"from_user"`
	ToUser   string  `json:"to_user"`
	Amount   float64 `json:"amount"`
}

// ComputeBalances reduces participant shares and recorded payments into a
// signed net balance per user: paid minus owed, rounded to 2 decimals.
// Positive = creditor (is owed money), negative = debtor (owes money).
func ComputeBalances(parts []ExpenseParticipant, payments []RoomPayment) map[string]float64 {
	balances := make(map[string]float64)

	for _, p := range payments {
		balances[p.UserID] += p.PaidAmount
	}
	for _, part := range parts {
		balances[part.UserID] -= part.OwedAmount
	}

	for userID, balance := range balances {
		balances[userID] = roundTwo(balance)
	}
	return balances
}

type userAmount struct {
	UserID string
	Amount float64
}

// MinimizeDebts reduces a balance map to a list of pairwise transfers using
// the greedy two-pointer settlement: largest debts are matched against
// largest credits first. Deterministic but not provably minimal in
// transaction count. Users within the settled tolerance generate nothing.
func MinimizeDebts(balances map[string]float64) []SimplifiedDebt {
	var debtors, creditors []userAmount

	for userID, balance := range balances {
		rounded := roundTwo(balance)
		if rounded < -settledTolerance {
			debtors = append(debtors, userAmount{userID, -rounded})
		} else if rounded > settledTolerance {
			creditors = append(creditors, userAmount{userID, rounded})
		}
	}

	// Largest amounts first; user ID breaks ties so output is stable
	// regardless of map iteration order.
	sortByAmountDesc(debtors)
	sortByAmountDesc(creditors)

	var transactions []SimplifiedDebt
	d, c := 0, 0

	for d < len(debtors) && c < len(creditors) {
		debtor := &debtors[d]
		creditor := &creditors[c]

		settle := math.Min(debtor.Amount, creditor.Amount)
		transactions = append(transactions, SimplifiedDebt{
			FromUser: debtor.UserID,
			ToUser:   creditor.UserID,
			Amount:   roundTwo(settle),
		})

		debtor.Amount -= settle
		creditor.Amount -= settle

		if math.Abs(debtor.Amount) < settledTolerance {
			d++
		}
		if math.Abs(creditor.Amount) < settledTolerance {
			c++
		}
	}

	return transactions
}

func sortByAmountDesc(list []userAmount) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Amount != list[j].Amount {
			return list[i].Amount > list[j].Amount
		}
		return list[i].UserID < list[j].UserID
	})
}

func roundTwo(val float64) float64 {
	return math.Round(val*100) / 100
}
