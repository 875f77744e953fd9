// Package settlement computes the transfers that equalize per-member spend
// within a trip. It is pure: no storage, no I/O, deterministic output for
// identical input.
package settlement

import (
	"sort"

	"github.com/karn30chavda/VerdantView/internal/models"
)

// Tolerance is the floating-point noise threshold. Balances within
// ±Tolerance of zero are treated as settled.
const Tolerance = 0.01

// Transfer is a single proposed payment that reduces net imbalance.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// MemberBalance is one member's position within a trip.
type MemberBalance struct {
	Name string
	// Paid is the total this member paid across matched trip expenses.
	Paid float64
	// Share is what this member owes of the total matched spend, one even
	// share per roster occurrence of the name.
	Share float64
	// Net is Paid - Share. Positive means the member is owed money.
	Net float64
}

// Balances computes each roster member's paid total and net balance.
//
// Expenses are attributed by exact payer-name match against the roster; an
// expense whose payer matches no roster entry is excluded from every total.
// The even share divides by the roster length as given. Duplicate roster
// names inflate the denominator and collapse to a single balance entry
// charged one share per occurrence, so net balances always sum to zero.
func Balances(roster []string, expenses []models.TripExpense) []MemberBalance {
	if len(roster) == 0 {
		return nil
	}

	occurrences := make(map[string]int, len(roster))
	for _, m := range roster {
		occurrences[m]++
	}

	paid := make(map[string]float64, len(roster))
	var total float64
	for _, e := range expenses {
		if occurrences[e.PayerName] == 0 {
			continue
		}
		paid[e.PayerName] += e.Amount
		total += e.Amount
	}

	share := total / float64(len(roster))

	seen := make(map[string]bool, len(roster))
	balances := make([]MemberBalance, 0, len(roster))
	for _, m := range roster {
		if seen[m] {
			continue
		}
		seen[m] = true
		owed := share * float64(occurrences[m])
		balances = append(balances, MemberBalance{
			Name:  m,
			Paid:  paid[m],
			Share: owed,
			Net:   paid[m] - owed,
		})
	}

	return balances
}

// Settle computes the transfers that settle a trip.
//
// The largest debtor is matched greedily against the largest creditor until
// one side is exhausted. The result is empty when the roster is empty or
// every balance is within Tolerance of zero. The transfer count is at most
// debtors + creditors - 1.
func Settle(roster []string, expenses []models.TripExpense) []Transfer {
	balances := Balances(roster, expenses)

	var debtors, creditors []MemberBalance
	for _, b := range balances {
		switch {
		case b.Net < -Tolerance:
			debtors = append(debtors, b)
		case b.Net > Tolerance:
			creditors = append(creditors, b)
		}
	}

	// Most-negative debtor and most-positive creditor first; stable so equal
	// balances keep roster order.
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].Net < debtors[j].Net })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].Net > creditors[j].Net })

	owes := make(map[string]float64, len(debtors))
	owed := make(map[string]float64, len(creditors))
	for _, d := range debtors {
		owes[d.Name] = -d.Net
	}
	for _, c := range creditors {
		owed[c.Name] = c.Net
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].Name
		creditor := creditors[j].Name

		amount := owes[debtor]
		if owed[creditor] < amount {
			amount = owed[creditor]
		}

		if amount > Tolerance {
			transfers = append(transfers, Transfer{
				From:   debtor,
				To:     creditor,
				Amount: amount,
			})
		}

		owes[debtor] -= amount
		owed[creditor] -= amount

		if owes[debtor] < Tolerance {
			i++
		}
		if owed[creditor] < Tolerance {
			j++
		}
	}

	return transfers
}
