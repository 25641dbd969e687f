// Package calculator computes group balances and minimal settlement plans
// from the locally stored expense ledger.
package calculator

import (
	"sort"

	"github.com/expenseai/go-expense-sync/models"
)

// epsilon absorbs floating point noise when comparing monetary amounts.
const epsilon = 0.01

// Balance is one participant's net position within a group. A positive Net
// means the participant is owed money, a negative Net means they owe.
type Balance struct {
	ParticipantID string
	Paid          float64
	Owed          float64
	Net           float64
}

// Transfer is a single payment from one participant to another.
type Transfer struct {
	FromID string
	ToID   string
	Amount float64
}

// ComputeBalances aggregates who paid what and who owes what over the given
// expenses. Settlement expenses need no special handling: a settlement is an
// amount paid by the debtor and owed by the creditor, so the same bookkeeping
// applies. Tombstoned expenses and shares or payers that lost their
// participant reference are skipped.
func ComputeBalances(expenses []models.Expense) []Balance {
	balances := make(map[string]*Balance)

	at := func(id string) *Balance {
		b, ok := balances[id]
		if !ok {
			b = &Balance{ParticipantID: id}
			balances[id] = b
		}
		return b
	}

	for _, e := range expenses {
		if e.IsDeleted || e.PaidByID == nil {
			continue
		}

		at(*e.PaidByID).Paid += e.Amount

		for _, share := range e.Shares {
			if share.ParticipantID == nil {
				continue
			}
			at(*share.ParticipantID).Owed += share.Amount
		}
	}

	result := make([]Balance, 0, len(balances))
	for _, b := range balances {
		b.Net = b.Paid - b.Owed
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ParticipantID < result[j].ParticipantID })

	return result
}

// SettlementPlan turns net balances into a small set of transfers that clears
// all debts. Debtors and creditors are matched greedily, largest first, so no
// participant appears in more transfers than necessary.
func SettlementPlan(balances []Balance) []Transfer {
	var debtors, creditors []Balance
	for _, b := range balances {
		switch {
		case b.Net < -epsilon:
			debtors = append(debtors, b)
		case b.Net > epsilon:
			creditors = append(creditors, b)
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].Net != debtors[j].Net {
			return debtors[i].Net < debtors[j].Net
		}
		return debtors[i].ParticipantID < debtors[j].ParticipantID
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].Net != creditors[j].Net {
			return creditors[i].Net > creditors[j].Net
		}
		return creditors[i].ParticipantID < creditors[j].ParticipantID
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		owes := -debtors[i].Net
		owed := creditors[j].Net

		amount := owes
		if owed < amount {
			amount = owed
		}

		if amount > epsilon {
			transfers = append(transfers, Transfer{
				FromID: debtors[i].ParticipantID,
				ToID:   creditors[j].ParticipantID,
				Amount: amount,
			})
		}

		debtors[i].Net += amount
		creditors[j].Net -= amount

		if -debtors[i].Net < epsilon {
			i++
		}
		if creditors[j].Net < epsilon {
			j++
		}
	}

	return transfers
}
