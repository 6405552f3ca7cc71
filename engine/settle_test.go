package engine

import (
	"math"
	"reflect"
	"testing"
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		parts    []ExpenseParticipant
		payments []RoomPayment
		want     map[string]float64
	}{
		{
			name:     "empty inputs",
			parts:    nil,
			payments: nil,
			want:     map[string]float64{},
		},
		{
			name: "one expense paid fully by one member",
			parts: []ExpenseParticipant{
				{ExpenseID: "e1", UserID: "alice", OwedAmount: 100},
				{ExpenseID: "e1", UserID: "bob", OwedAmount: 100},
				{ExpenseID: "e1", UserID: "charlie", OwedAmount: 100},
			},
			payments: []RoomPayment{
				{UserID: "alice", PaidAmount: 300},
			},
			want: map[string]float64{"alice": 200, "bob": -100, "charlie": -100},
		},
		{
			name: "payments accumulate and shares subtract across expenses",
			parts: []ExpenseParticipant{
				{ExpenseID: "e1", UserID: "alice", OwedAmount: 10.555},
				{ExpenseID: "e2", UserID: "alice", OwedAmount: 20},
				{ExpenseID: "e1", UserID: "bob", OwedAmount: 9.445},
			},
			payments: []RoomPayment{
				{UserID: "alice", PaidAmount: 40},
			},
			want: map[string]float64{"alice": 9.45, "bob": -9.45},
		},
		{
			name: "payment with no shares is pure credit",
			parts: []ExpenseParticipant{
				{ExpenseID: "e1", UserID: "bob", OwedAmount: 50},
			},
			payments: []RoomPayment{
				{UserID: "alice", PaidAmount: 50},
			},
			want: map[string]float64{"alice": 50, "bob": -50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalances(tt.parts, tt.payments)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances, want %d: %v", len(got), len(tt.want), got)
			}
			for user, want := range tt.want {
				if math.Abs(got[user]-want) > 0.01 {
					t.Errorf("balance[%s] = %v, want %v", user, got[user], want)
				}
			}
		})
	}
}

func TestMinimizeDebts(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]float64
		want     []SimplifiedDebt
	}{
		{
			name:     "empty map",
			balances: map[string]float64{},
			want:     nil,
		},
		{
			name:     "all settled within tolerance",
			balances: map[string]float64{"alice": 0.005, "bob": -0.005},
			want:     nil,
		},
		{
			name:     "single creditor two debtors",
			balances: map[string]float64{"alice": 200, "bob": -100, "charlie": -100},
			want: []SimplifiedDebt{
				{FromUser: "bob", ToUser: "alice", Amount: 100},
				{FromUser: "charlie", ToUser: "alice", Amount: 100},
			},
		},
		{
			name:     "largest debt settles first",
			balances: map[string]float64{"alice": 50, "bob": 30, "charlie": -60, "dana": -20},
			want: []SimplifiedDebt{
				{FromUser: "charlie", ToUser: "alice", Amount: 50},
				{FromUser: "charlie", ToUser: "bob", Amount: 10},
				{FromUser: "dana", ToUser: "bob", Amount: 20},
			},
		},
		{
			name:     "debtor spans multiple creditors",
			balances: map[string]float64{"alice": 75.5, "bob": 24.5, "charlie": -100},
			want: []SimplifiedDebt{
				{FromUser: "charlie", ToUser: "alice", Amount: 75.5},
				{FromUser: "charlie", ToUser: "bob", Amount: 24.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinimizeDebts(tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MinimizeDebts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Sum of emitted transfers must equal the positive side of the balance
// sheet, every amount must be strictly positive, and nobody pays themselves.
func TestMinimizeDebtsConservation(t *testing.T) {
	cases := []map[string]float64{
		{"a": 100, "b": -40, "c": -60},
		{"a": 33.33, "b": 33.33, "c": -66.66},
		{"a": 12.34, "b": -5.67, "c": -6.67},
		{"a": 250.75, "b": 100.10, "c": -175.42, "d": -175.43},
	}

	for _, balances := range cases {
		var positive float64
		for _, b := range balances {
			if b > 0 {
				positive += b
			}
		}

		var transferred float64
		for _, debt := range MinimizeDebts(balances) {
			if debt.Amount <= 0 {
				t.Errorf("non-positive transfer %+v for %v", debt, balances)
			}
			if debt.FromUser == debt.ToUser {
				t.Errorf("self-debt %+v for %v", debt, balances)
			}
			transferred += debt.Amount
		}

		if math.Abs(transferred-positive) > 0.01 {
			t.Errorf("transferred %.2f, want %.2f for %v", transferred, positive, balances)
		}
	}
}

func TestMinimizeDebtsIdempotent(t *testing.T) {
	balances := map[string]float64{
		"alice": 120.50, "bob": -60.25, "charlie": -60.25,
		"dana": 15, "erin": -15,
	}

	first := MinimizeDebts(balances)
	for i := 0; i < 20; i++ {
		if got := MinimizeDebts(balances); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestEqualSplitEndToEnd(t *testing.T) {
	// One EQUAL expense of 300 covered fully by alice: the other two
	// members each transfer their equal share back to her.
	parts := []ExpenseParticipant{
		{ExpenseID: "e1", UserID: "alice", OwedAmount: 100},
		{ExpenseID: "e1", UserID: "bob", OwedAmount: 100},
		{ExpenseID: "e1", UserID: "charlie", OwedAmount: 100},
	}
	payments := []RoomPayment{{UserID: "alice", PaidAmount: 300}}

	debts := MinimizeDebts(ComputeBalances(parts, payments))

	want := []SimplifiedDebt{
		{FromUser: "bob", ToUser: "alice", Amount: 100},
		{FromUser: "charlie", ToUser: "alice", Amount: 100},
	}
	if !reflect.DeepEqual(debts, want) {
		t.Errorf("debts = %+v, want %+v", debts, want)
	}
}
