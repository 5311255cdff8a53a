package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/email"
	"github.com/cmlabs-hris/hris-attendance/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	to   []string
	data email.AbsenceSummaryData
	err  error
}

func (m *stubMailer) SendAbsenceSummary(ctx context.Context, to []string, data email.AbsenceSummaryData) error {
	m.to = to
	m.data = data
	return m.err
}

type stubPublisher struct {
	key     string
	value   []byte
	headers map[string]string
	err     error
}

func (p *stubPublisher) Publish(ctx context.Context, key string, value []byte, headers map[string]string) error {
	p.key = key
	p.value = value
	p.headers = headers
	return p.err
}

type sinkFunc func(ctx context.Context, summary attendance.SweepSummary) error

func (f sinkFunc) NotifySweep(ctx context.Context, summary attendance.SweepSummary) error {
	return f(ctx, summary)
}

var summary = attendance.SweepSummary{
	Date:           "2025-03-04",
	RosterSize:     3,
	NewlyAbsent:    2,
	Present:        1,
	NewlyAbsentIDs: []string{"emp-2", "emp-3"},
}

func TestEmailSink(t *testing.T) {
	store := memory.NewStore()
	store.AddEmployee(employee.Employee{ID: "emp-2", FullName: "Asha Rao", Email: "asha@example.com", EmploymentStatus: employee.EmploymentStatusActive})
	store.AddEmployee(employee.Employee{ID: "emp-3", FullName: "Vikram Iyer", Email: "vikram@example.com", EmploymentStatus: employee.EmploymentStatusActive})

	mailer := &stubMailer{}
	sink := NewEmailSink(store.Employees(), mailer, []string{"hr@example.com"})
	require.NotNil(t, sink)

	require.NoError(t, sink.NotifySweep(context.Background(), summary))
	assert.Equal(t, []string{"hr@example.com"}, mailer.to)
	assert.Equal(t, "2025-03-04", mailer.data.Date)
	assert.Equal(t, 2, mailer.data.NewlyAbsent)
	require.Len(t, mailer.data.Absentees, 2)
	assert.Equal(t, "Asha Rao", mailer.data.Absentees[0].FullName)
	assert.Equal(t, "vikram@example.com", mailer.data.Absentees[1].Email)

	mailer.err = errors.New("550 mailbox unavailable")
	assert.Error(t, sink.NotifySweep(context.Background(), summary))
}

func TestEmailSink_NoRecipients(t *testing.T) {
	assert.Nil(t, NewEmailSink(memory.NewStore().Employees(), &stubMailer{}, nil))
}

func TestKafkaSink(t *testing.T) {
	pub := &stubPublisher{}
	sink := NewKafkaSink(pub)

	require.NoError(t, sink.NotifySweep(context.Background(), summary))
	assert.Equal(t, "2025-03-04", pub.key)
	assert.Equal(t, "attendance.absence_sweep.completed", pub.headers["event_type"])

	var decoded attendance.SweepSummary
	require.NoError(t, json.Unmarshal(pub.value, &decoded))
	assert.Equal(t, summary.NewlyAbsentIDs, decoded.NewlyAbsentIDs)

	interrupted := summary
	interrupted.Interrupted = true
	require.NoError(t, sink.NotifySweep(context.Background(), interrupted))
	assert.Equal(t, "attendance.absence_sweep.interrupted", pub.headers["event_type"])
}

func TestMulti(t *testing.T) {
	var calls []string
	failing := sinkFunc(func(ctx context.Context, s attendance.SweepSummary) error {
		calls = append(calls, "failing")
		return errors.New("broker unreachable")
	})
	ok := sinkFunc(func(ctx context.Context, s attendance.SweepSummary) error {
		calls = append(calls, "ok")
		return nil
	})

	sink := NewMulti(failing, nil, ok, NewLogSink())
	err := sink.NotifySweep(context.Background(), summary)

	assert.ErrorContains(t, err, "broker unreachable")
	assert.Equal(t, []string{"failing", "ok"}, calls)
}
