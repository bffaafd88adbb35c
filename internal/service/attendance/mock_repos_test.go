package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
)

// ── Mock ClockRecordRepository ──

// mockClockRecordRepo enforces the same (employee, date, event) uniqueness as
// the unique index in PostgreSQL.
type mockClockRecordRepo struct {
	mu      sync.Mutex
	records []attendance.ClockRecord
	seq     int

	// beforeAppend runs before the uniqueness check; tests use it to slip a
	// competing insert in between the service's read and its write.
	beforeAppend func(record attendance.ClockRecord)
}

func newMockClockRecordRepo() *mockClockRecordRepo {
	return &mockClockRecordRepo{}
}

func (m *mockClockRecordRepo) GetDayRecords(_ context.Context, employeeID string, date time.Time) ([]attendance.ClockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []attendance.ClockRecord
	for _, r := range m.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

func (m *mockClockRecordRepo) Append(_ context.Context, record attendance.ClockRecord) (attendance.ClockRecord, error) {
	if m.beforeAppend != nil {
		hook := m.beforeAppend
		m.beforeAppend = nil
		hook(record)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.EmployeeID == record.EmployeeID && r.Date.Equal(record.Date) && r.Event == record.Event {
			if record.Event == attendance.EventIn {
				return attendance.ClockRecord{}, fmt.Errorf("failed to append clock record: %w", attendance.ErrDuplicateCheckIn)
			}
			return attendance.ClockRecord{}, fmt.Errorf("failed to append clock record: %w", attendance.ErrDuplicateCheckOut)
		}
	}

	m.seq++
	record.ID = fmt.Sprintf("rec-%d", m.seq)
	record.CreatedAt = record.Timestamp
	record.UpdatedAt = record.Timestamp
	m.records = append(m.records, record)
	return record, nil
}

func (m *mockClockRecordRepo) UpdateLeadRecordStatus(_ context.Context, employeeID string, date time.Time, status attendance.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		r := &m.records[i]
		if r.EmployeeID == employeeID && r.Date.Equal(date) && r.Event == attendance.EventIn {
			r.Status = status
			return nil
		}
	}
	return fmt.Errorf("lead record not found")
}

func (m *mockClockRecordRepo) ListIncompleteDays(_ context.Context, from, to time.Time) ([]attendance.IncompleteDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type key struct {
		employeeID string
		date       time.Time
	}
	counts := make(map[key]int)
	var order []key
	for _, r := range m.records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		k := key{r.EmployeeID, r.Date}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	var result []attendance.IncompleteDay
	for _, k := range order {
		if counts[k]%2 != 0 {
			result = append(result, attendance.IncompleteDay{EmployeeID: k.employeeID, Date: k.date, RecordCount: counts[k]})
		}
	}
	return result, nil
}

// insert bypasses uniqueness to seed anomalous data.
func (m *mockClockRecordRepo) insert(record attendance.ClockRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	record.ID = fmt.Sprintf("rec-%d", m.seq)
	m.records = append(m.records, record)
}

func (m *mockClockRecordRepo) lead(employeeID string, date time.Time) *attendance.ClockRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].EmployeeID == employeeID && m.records[i].Date.Equal(date) && m.records[i].Event == attendance.EventIn {
			r := m.records[i]
			return &r
		}
	}
	return nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMockEmployeeRepo(employees ...employee.Employee) *mockEmployeeRepo {
	m := &mockEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		m.employees[e.ID] = e
	}
	return m
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// ── Mock WorkScheduleRepository ──

type mockWorkScheduleRepo struct {
	active *schedule.WorkSchedule
}

func (m *mockWorkScheduleRepo) GetActiveSchedule(_ context.Context) (*schedule.WorkSchedule, error) {
	return m.active, nil
}

// ── Mock calendar.Repository ──

type mockCalendarRepo struct {
	holidays     map[string]calendar.Holiday
	declarations map[string][]calendar.RecoveryDeclaration
	overtime     map[string]bool
}

func newMockCalendarRepo() *mockCalendarRepo {
	return &mockCalendarRepo{
		holidays:     make(map[string]calendar.Holiday),
		declarations: make(map[string][]calendar.RecoveryDeclaration),
		overtime:     make(map[string]bool),
	}
}

func (m *mockCalendarRepo) GetHoliday(_ context.Context, date time.Time) (*calendar.Holiday, error) {
	if h, ok := m.holidays[date.Format("2006-01-02")]; ok {
		return &h, nil
	}
	return nil, nil
}

func (m *mockCalendarRepo) GetRecoveryDeclarations(_ context.Context, date time.Time) ([]calendar.RecoveryDeclaration, error) {
	return m.declarations[date.Format("2006-01-02")], nil
}

func (m *mockCalendarRepo) HasApprovedOvertime(_ context.Context, employeeID string, date time.Time) (bool, error) {
	return m.overtime[employeeID+"|"+date.Format("2006-01-02")], nil
}

func (m *mockCalendarRepo) addHoliday(date, name string) {
	m.holidays[date] = calendar.Holiday{ID: "hol-" + date, Name: name}
}

func (m *mockCalendarRepo) addDeclaration(date string, decl calendar.RecoveryDeclaration) {
	m.declarations[date] = append(m.declarations[date], decl)
}

func (m *mockCalendarRepo) approveOvertime(employeeID, date string) {
	m.overtime[employeeID+"|"+date] = true
}

// ── Mock Transactor ──

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
