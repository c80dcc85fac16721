package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usmcsd/mycsd-api/internal/domain"
)

func newAttendanceFixture(t *testing.T) (*fakeStore, *AttendanceService) {
	t.Helper()
	st := newFakeStore()
	svc := NewAttendanceService(&fakeEventRepo{st: st}, &fakeAttendanceRepo{st: st}, &fakeProfileRepo{st: st})
	return st, svc
}

func TestAttendanceService_ResolveEvent(t *testing.T) {
	st, svc := newAttendanceFixture(t)
	club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
	event := st.addEvent(domain.Event{ClubID: club.ID, Title: "Tournament", Status: domain.EventApproved, AttendanceToken: "tok-1"})

	t.Run("known token", func(t *testing.T) {
		view, err := svc.ResolveEvent(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Equal(t, event.ID, view.ID)
		assert.Equal(t, "Tournament", view.Title)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.ResolveEvent(context.Background(), "no-such-token")

		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("empty token never matches", func(t *testing.T) {
		st.addEvent(domain.Event{ClubID: club.ID, Status: domain.EventPending})

		_, err := svc.ResolveEvent(context.Background(), "")

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestAttendanceService_RecordAttendance(t *testing.T) {
	st, svc := newAttendanceFixture(t)
	club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")

	approved := st.addEvent(domain.Event{ClubID: club.ID, Status: domain.EventApproved, AttendanceToken: "tok-approved"})
	completed := st.addEvent(domain.Event{ClubID: club.ID, Status: domain.EventCompleted, AttendanceToken: "tok-completed"})
	st.addEvent(domain.Event{ClubID: club.ID, Status: domain.EventPending, AttendanceToken: "tok-pending"})

	t.Run("first scan records with denormalised identity", func(t *testing.T) {
		record, err := svc.RecordAttendance(context.Background(), student, "tok-approved")

		require.NoError(t, err)
		assert.Equal(t, approved.ID, record.EventID)
		assert.Equal(t, student.ID, record.StudentID)
		assert.Equal(t, "Ali", record.StudentName)
		assert.Equal(t, "158392", record.Matric)
		assert.Equal(t, domain.PointsPending, record.Credited)
		assert.False(t, record.RecordedAt.IsZero())
	})

	t.Run("second scan of the same event is rejected", func(t *testing.T) {
		_, err := svc.RecordAttendance(context.Background(), student, "tok-approved")

		assert.ErrorIs(t, err, ErrAlreadyRecorded)

		records, err := svc.Attendees(context.Background(), club, approved.ID)
		require.NoError(t, err)
		assert.Len(t, records, 1, "at most one record per (event, student)")
	})

	t.Run("completed events still accept attendance", func(t *testing.T) {
		record, err := svc.RecordAttendance(context.Background(), student, "tok-completed")

		require.NoError(t, err)
		assert.Equal(t, completed.ID, record.EventID)
	})

	t.Run("pending events do not", func(t *testing.T) {
		_, err := svc.RecordAttendance(context.Background(), student, "tok-pending")

		assert.ErrorIs(t, err, ErrAttendanceClosed)
	})

	t.Run("clubs and admins cannot check in", func(t *testing.T) {
		_, err := svc.RecordAttendance(context.Background(), club, "tok-approved")
		assert.ErrorIs(t, err, ErrNotAuthorized)

		admin := st.addAdmin(testAdminEmail)
		_, err = svc.RecordAttendance(context.Background(), admin, "tok-approved")
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestAttendanceService_Attendees(t *testing.T) {
	st, svc := newAttendanceFixture(t)
	club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
	other := st.addClub("robotics@club.usm.my", "Robotics", "Robotics Club")
	admin := st.addAdmin(testAdminEmail)
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")

	event := st.addEvent(domain.Event{ClubID: club.ID, Status: domain.EventApproved, AttendanceToken: "tok-1"})
	_, err := svc.RecordAttendance(context.Background(), student, "tok-1")
	require.NoError(t, err)

	t.Run("owning club", func(t *testing.T) {
		records, err := svc.Attendees(context.Background(), club, event.ID)

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("admin", func(t *testing.T) {
		records, err := svc.Attendees(context.Background(), admin, event.ID)

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("other club refused", func(t *testing.T) {
		_, err := svc.Attendees(context.Background(), other, event.ID)

		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("students refused", func(t *testing.T) {
		_, err := svc.Attendees(context.Background(), student, event.ID)

		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}
