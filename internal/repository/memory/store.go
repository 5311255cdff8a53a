// Package memory keeps every attendance table in process memory. It backs the
// STORAGE_DRIVER=memory mode and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/google/uuid"
)

type dayKey struct {
	employeeID string
	date       string
}

func keyOf(employeeID string, date time.Time) dayKey {
	return dayKey{employeeID: employeeID, date: clock.FormatDate(date)}
}

// Store holds all tables behind one mutex, so every single-row operation is atomic.
type Store struct {
	mu          sync.Mutex
	attendances map[dayKey]attendance.Attendance
	absences    map[dayKey]attendance.Absence
	holidays    map[string]calendar.Holiday
	corrections map[string]correction.Request
	employees   map[string]employee.Employee

	txMu sync.Mutex
	now  func() time.Time
}

// NewStore returns an empty store whose roster is the given active employee ids.
func NewStore(roster ...string) *Store {
	s := &Store{
		attendances: make(map[dayKey]attendance.Attendance),
		absences:    make(map[dayKey]attendance.Absence),
		holidays:    make(map[string]calendar.Holiday),
		corrections: make(map[string]correction.Request),
		employees:   make(map[string]employee.Employee),
		now:         time.Now,
	}
	for _, id := range roster {
		s.AddEmployee(employee.Employee{ID: id, FullName: id, EmploymentStatus: employee.EmploymentStatusActive})
	}
	return s
}

// AddEmployee inserts or replaces a roster entry.
func (s *Store) AddEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	s.employees[e.ID] = e
}

func (s *Store) Attendances() attendance.AttendanceRepository { return &attendanceRepo{s} }
func (s *Store) Absences() attendance.AbsenceRepository       { return &absenceRepo{s} }
func (s *Store) Holidays() calendar.HolidayRepository         { return &holidayRepo{s} }
func (s *Store) Corrections() correction.Repository           { return &correctionRepo{s} }
func (s *Store) Employees() employee.Repository               { return &employeeRepo{s} }

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type txKey struct{}

// WithinTransaction serializes transactional units against each other. Writes made
// before fn fails are not rolled back.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// WithinDay implements attendance.DayGuard. Transactions are already serialized, so
// every day shares one lock.
func (s *Store) WithinDay(ctx context.Context, employeeID string, date time.Time, fn func(ctx context.Context) error) error {
	return s.WithinTransaction(ctx, fn)
}

// ========================================
// Attendance
// ========================================

type attendanceRepo struct{ s *Store }

func (r *attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	att, ok := r.s.attendances[keyOf(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &att, nil
}

func (r *attendanceRepo) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, false, err
	}
	k := keyOf(att.EmployeeID, att.Date)
	if existing, ok := r.s.attendances[k]; ok {
		return existing, false, nil
	}
	now := r.s.now()
	att.ID = newID()
	att.Date = clock.DateOf(att.Date)
	att.CheckOut = nil
	att.CreatedAt = now
	att.UpdatedAt = now
	r.s.attendances[k] = att
	return att, true, nil
}

func (r *attendanceRepo) Close(ctx context.Context, id string, checkOut time.Time, latitude, longitude *float64, mode attendance.LocationMode) (attendance.Attendance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, false, err
	}
	for k, att := range r.s.attendances {
		if att.ID != id {
			continue
		}
		if att.IsClosed() {
			return att, false, nil
		}
		if checkOut.Before(att.CheckIn) {
			return attendance.Attendance{}, false, attendance.ErrCheckOutBeforeCheckIn
		}
		att.CheckOut = &checkOut
		att.Latitude = latitude
		att.Longitude = longitude
		att.LocationMode = mode
		att.UpdatedAt = r.s.now()
		r.s.attendances[k] = att
		return att, true, nil
	}
	return attendance.Attendance{}, false, fmt.Errorf("attendance %s not found", id)
}

func (r *attendanceRepo) HasCheckedIn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := r.s.attendances[keyOf(employeeID, date)]
	return ok, nil
}

// ========================================
// Absence
// ========================================

type absenceRepo struct{ s *Store }

func (r *absenceRepo) GetOrCreate(ctx context.Context, employeeID string, date time.Time, source attendance.AbsenceSource) (attendance.Absence, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return attendance.Absence{}, false, err
	}
	k := keyOf(employeeID, date)
	if existing, ok := r.s.absences[k]; ok {
		return existing, false, nil
	}
	abs := attendance.Absence{
		ID:         newID(),
		EmployeeID: employeeID,
		Date:       clock.DateOf(date),
		Source:     source,
		CreatedAt:  r.s.now(),
	}
	r.s.absences[k] = abs
	return abs, true, nil
}

func (r *absenceRepo) Exists(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := r.s.absences[keyOf(employeeID, date)]
	return ok, nil
}

func (r *absenceRepo) Delete(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	k := keyOf(employeeID, date)
	if _, ok := r.s.absences[k]; !ok {
		return false, nil
	}
	delete(r.s.absences, k)
	return true, nil
}

// ========================================
// Holiday
// ========================================

type holidayRepo struct{ s *Store }

func (r *holidayRepo) GetByDate(ctx context.Context, date time.Time, country string) (*calendar.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day := clock.FormatDate(date)
	for _, h := range r.s.holidays {
		if h.Country == country && clock.FormatDate(h.Date) == day {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *holidayRepo) Create(ctx context.Context, holiday calendar.Holiday) (calendar.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return calendar.Holiday{}, err
	}
	day := clock.FormatDate(holiday.Date)
	for _, h := range r.s.holidays {
		if h.Country == holiday.Country && clock.FormatDate(h.Date) == day {
			return calendar.Holiday{}, calendar.ErrHolidayExists
		}
	}
	holiday.ID = newID()
	holiday.Date = clock.DateOf(holiday.Date)
	holiday.CreatedAt = r.s.now()
	r.s.holidays[holiday.ID] = holiday
	return holiday, nil
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.s.holidays[id]; !ok {
		return calendar.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}

func (r *holidayRepo) ListByYear(ctx context.Context, country string, year int) ([]calendar.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	holidays := []calendar.Holiday{}
	for _, h := range r.s.holidays {
		if h.Country == country && h.Date.Year() == year {
			holidays = append(holidays, h)
		}
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays, nil
}

// ========================================
// Correction
// ========================================

type correctionRepo struct{ s *Store }

func (r *correctionRepo) Upsert(ctx context.Context, employeeID string, date time.Time, reason string) (correction.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return correction.Request{}, err
	}
	now := r.s.now()
	day := clock.FormatDate(date)
	for id, c := range r.s.corrections {
		if c.EmployeeID != employeeID || clock.FormatDate(c.Date) != day {
			continue
		}
		if c.Status == correction.StatusApproved {
			return c, nil
		}
		c.Reason = reason
		c.Status = correction.StatusPending
		c.ReviewerID = nil
		c.ReviewerRemark = nil
		c.ReviewedAt = nil
		c.UpdatedAt = now
		r.s.corrections[id] = c
		return c, nil
	}
	c := correction.Request{
		ID:         newID(),
		EmployeeID: employeeID,
		Date:       clock.DateOf(date),
		Reason:     reason,
		Status:     correction.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.s.corrections[c.ID] = c
	return c, nil
}

func (r *correctionRepo) GetByID(ctx context.Context, id string) (correction.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return correction.Request{}, err
	}
	c, ok := r.s.corrections[id]
	if !ok {
		return correction.Request{}, correction.ErrCorrectionNotFound
	}
	return c, nil
}

func (r *correctionRepo) Review(ctx context.Context, id string, status correction.Status, reviewerID string, remark *string, reviewedAt time.Time) (correction.Request, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return correction.Request{}, false, err
	}
	c, ok := r.s.corrections[id]
	if !ok || !c.IsPending() {
		return correction.Request{}, false, nil
	}
	c.Status = status
	c.ReviewerID = &reviewerID
	c.ReviewerRemark = remark
	c.ReviewedAt = &reviewedAt
	c.UpdatedAt = r.s.now()
	r.s.corrections[id] = c
	return c, true, nil
}

func (r *correctionRepo) ListPending(ctx context.Context) ([]correction.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pending := []correction.Request{}
	for _, c := range r.s.corrections {
		if c.IsPending() {
			pending = append(pending, c)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	return pending, nil
}

// ========================================
// Employee
// ========================================

type employeeRepo struct{ s *Store }

func (r *employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := []string{}
	for id, e := range r.s.employees {
		if e.IsActive() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *employeeRepo) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	employees := []employee.Employee{}
	for _, id := range ids {
		if e, ok := r.s.employees[id]; ok {
			employees = append(employees, e)
		}
	}
	return employees, nil
}
