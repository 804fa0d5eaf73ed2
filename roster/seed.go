/*
seed.go - Demo roster and ledger state

PURPOSE:
  Seeds the stock six-employee demo used by the dev server and the API
  tests. Ledger state is restored with histories whose transaction sums
  equal the balances, so the balance invariant holds from the first
  operation.
*/
package roster

import (
	"fmt"
	"time"

	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
)

// Seed populates the store and ledger with the demo population.
func Seed(s *Store, ledger *rewards.Ledger) {
	for _, d := range demoData {
		s.Put(d.employee)
		ledger.Restore(d.account())
	}
}

type demoEmployee struct {
	employee      Employee
	transactions  []rewards.Transaction
	notifications []rewards.Notification
}

func (d demoEmployee) account() rewards.Account {
	acc := rewards.Account{
		EmployeeID:    d.employee.ID,
		Transactions:  d.transactions,
		Notifications: d.notifications,
	}
	acc.Balance = acc.TransactionSum()
	return acc
}

func seedTx(empID string, n int, kind rewards.TransactionKind, amount int, desc, day string) rewards.Transaction {
	date, _ := time.Parse("2006-01-02", day)
	return rewards.Transaction{
		ID:          fmt.Sprintf("%s-tx-%d", empID, n),
		Kind:        kind,
		Amount:      amount,
		Description: desc,
		Date:        date,
	}
}

func seedNote(empID string, n int, msg string, read bool, day string) rewards.Notification {
	at, _ := time.Parse("2006-01-02", day)
	return rewards.Notification{
		ID:        fmt.Sprintf("%s-nt-%d", empID, n),
		Message:   msg,
		Read:      read,
		CreatedAt: at,
	}
}

var demoData = []demoEmployee{
	{
		employee: Employee{
			ID: "emp-1", Name: "Sophia Chen", Role: "Senior Engineer", Dept: "Engineering", Avatar: "SC",
			Metrics:       perform.MetricSet{TaskCompletion: 94, Productivity: 88, DeadlinesMet: 96, QualityScore: 91, Attendance: 98},
			WeeklyScores:  []int{82, 85, 88, 91, 89, 93, 95},
			MonthlyScores: []int{78, 82, 86, 91},
		},
		transactions: []rewards.Transaction{
			seedTx("emp-1", 1, rewards.KindEarned, 600, "Quarterly Excellence Bonus", "2024-01-05"),
			seedTx("emp-1", 2, rewards.KindEarned, 300, "Weekly Top Performer", "2024-01-15"),
			seedTx("emp-1", 3, rewards.KindRedeemed, -150, "Lunch Voucher", "2024-01-20"),
			seedTx("emp-1", 4, rewards.KindEarned, 500, "Monthly #1 Bonus", "2024-02-01"),
		},
		notifications: []rewards.Notification{
			seedNote("emp-1", 1, "🏆 You ranked #1 this week! 300 points added.", false, "2024-01-15"),
			seedNote("emp-1", 2, "✅ Monthly report generated. Check your insights!", false, "2024-02-01"),
		},
	},
	{
		employee: Employee{
			ID: "emp-2", Name: "Marcus Rivera", Role: "Product Manager", Dept: "Product", Avatar: "MR",
			Metrics:       perform.MetricSet{TaskCompletion: 89, Productivity: 92, DeadlinesMet: 85, QualityScore: 88, Attendance: 95},
			WeeklyScores:  []int{78, 80, 83, 87, 85, 89, 91},
			MonthlyScores: []int{74, 79, 84, 88},
		},
		transactions: []rewards.Transaction{
			seedTx("emp-2", 1, rewards.KindEarned, 320, "Performance Bonus", "2024-01-10"),
			seedTx("emp-2", 2, rewards.KindEarned, 200, "Weekly Top 3", "2024-01-22"),
			seedTx("emp-2", 3, rewards.KindEarned, 300, "Weekly Top 3", "2024-02-05"),
		},
		notifications: []rewards.Notification{
			seedNote("emp-2", 1, "🥈 You ranked #2 this month! 200 points added.", true, "2024-02-05"),
		},
	},
	{
		employee: Employee{
			ID: "emp-3", Name: "Aisha Patel", Role: "UX Designer", Dept: "Design", Avatar: "AP",
			Metrics:       perform.MetricSet{TaskCompletion: 91, Productivity: 86, DeadlinesMet: 93, QualityScore: 95, Attendance: 92},
			WeeklyScores:  []int{80, 82, 84, 86, 88, 87, 90},
			MonthlyScores: []int{76, 80, 85, 89},
		},
		transactions: []rewards.Transaction{
			seedTx("emp-3", 1, rewards.KindEarned, 820, "Performance Bonus", "2024-01-08"),
			seedTx("emp-3", 2, rewards.KindEarned, 150, "Weekly Top 3", "2024-01-28"),
			seedTx("emp-3", 3, rewards.KindRedeemed, -300, "Spotify Premium (3mo)", "2024-02-02"),
		},
	},
	{
		employee: Employee{
			ID: "emp-4", Name: "James Okonkwo", Role: "Data Analyst", Dept: "Analytics", Avatar: "JO",
			Metrics:       perform.MetricSet{TaskCompletion: 87, Productivity: 84, DeadlinesMet: 90, QualityScore: 82, Attendance: 97},
			WeeklyScores:  []int{75, 77, 80, 82, 81, 83, 85},
			MonthlyScores: []int{72, 76, 80, 84},
		},
		transactions: []rewards.Transaction{
			seedTx("emp-4", 1, rewards.KindEarned, 210, "Quarterly Bonus", "2024-01-12"),
			seedTx("emp-4", 2, rewards.KindEarned, 100, "Performance Bonus", "2024-02-10"),
		},
	},
	{
		employee: Employee{
			ID: "emp-5", Name: "Elena Vasquez", Role: "Backend Developer", Dept: "Engineering", Avatar: "EV",
			Metrics:       perform.MetricSet{TaskCompletion: 82, Productivity: 79, DeadlinesMet: 88, QualityScore: 84, Attendance: 90},
			WeeklyScores:  []int{70, 73, 75, 78, 77, 80, 82},
			MonthlyScores: []int{68, 72, 76, 81},
		},
		transactions: []rewards.Transaction{
			seedTx("emp-5", 1, rewards.KindEarned, 180, "Performance Bonus", "2024-01-18"),
		},
	},
	{
		employee: Employee{
			ID: "emp-6", Name: "Noah Kim", Role: "DevOps Engineer", Dept: "Infrastructure", Avatar: "NK",
			Metrics:       perform.MetricSet{TaskCompletion: 79, Productivity: 82, DeadlinesMet: 83, QualityScore: 78, Attendance: 94},
			WeeklyScores:  []int{68, 70, 72, 74, 73, 76, 79},
			MonthlyScores: []int{65, 69, 73, 78},
		},
		transactions: []rewards.Transaction{
			seedTx("emp-6", 1, rewards.KindEarned, 90, "Performance Bonus", "2024-01-25"),
		},
	},
}
