/*
Package roster holds the employee records the engine operates on.

PURPOSE:
  The roster is supplied by an external collaborator (an HR system, a
  demo seed, a persistence layer); the engine only reads identity,
  metrics, and score history from it. Employee CRUD beyond what the core
  needs is out of scope - the Store here is the minimal thread-safe
  holder that the API layer and host persistence hang off of.

ORDERING:
  List returns employees in insertion order. This matters: ranking
  breaks score ties by input order, so the roster's ordering is part of
  the tie-break contract.

SEE ALSO:
  - perform/ranking.go: Consumes Subjects() in roster order
  - store/sqlite: Host-side durability for roster + ledger state
*/
package roster

import (
	"sync"

	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
)

// Employee is one roster record. Ledger state (balance, transactions,
// notifications) lives in the rewards.Ledger, keyed by ID; it is not
// duplicated here.
type Employee struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Role          string            `json:"role"`
	Dept          string            `json:"dept"`
	Avatar        string            `json:"avatar"` // display initials
	Metrics       perform.MetricSet `json:"metrics"`
	WeeklyScores  []int             `json:"weeklyScores"`
	MonthlyScores []int             `json:"monthlyScores"`
}

// Subject converts the record into a ranking input.
func (e Employee) Subject() perform.Subject {
	return perform.Subject{
		ID:            e.ID,
		Name:          e.Name,
		Metrics:       e.Metrics,
		WeeklyScores:  e.WeeklyScores,
		MonthlyScores: e.MonthlyScores,
	}
}

// =============================================================================
// STORE - In-memory roster holder
// =============================================================================

// Store is a thread-safe, insertion-ordered employee collection.
type Store struct {
	mu        sync.RWMutex
	employees map[string]*Employee
	order     []string
}

// NewStore creates an empty roster.
func NewStore() *Store {
	return &Store{employees: make(map[string]*Employee)}
}

// Put inserts or replaces an employee. New ids go to the end of the
// iteration order; replacing keeps the original position.
func (s *Store) Put(e Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.employees[e.ID] = &e
}

// Get returns a copy of the employee record.
func (s *Store) Get(id string) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return Employee{}, false
	}
	return *e, true
}

// Remove deletes an employee from the roster.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return false
	}
	delete(s.employees, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all employees in insertion order.
func (s *Store) List() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Employee, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.employees[id])
	}
	return out
}

// Len returns the roster size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// UpdateMetrics replaces an employee's metric set. Scores are derived on
// demand, so nothing else needs to change here.
func (s *Store) UpdateMetrics(id string, m perform.MetricSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return false
	}
	e.Metrics = m
	return true
}

// Subjects returns the ranking inputs for the whole roster, in roster
// order.
func (s *Store) Subjects() []perform.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]perform.Subject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.employees[id].Subject())
	}
	return out
}

// =============================================================================
// LEDGER WIRING
// =============================================================================

// OpenAccounts makes sure every roster member has a ledger account.
func OpenAccounts(s *Store, ledger *rewards.Ledger) {
	for _, e := range s.List() {
		ledger.Open(e.ID)
	}
}
