package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usmcsd/mycsd-api/internal/domain"
)

func TestPointsService_AssignPoints(t *testing.T) {
	t.Run("credits every pending attendee exactly once", func(t *testing.T) {
		st := newFakeStore()
		attendanceSvc := NewAttendanceService(&fakeEventRepo{st: st}, &fakeAttendanceRepo{st: st}, &fakeProfileRepo{st: st})
		svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})

		club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
		admin := st.addAdmin(testAdminEmail)
		ali := st.addStudent("ali@student.usm.my", "Ali", "158392")
		siti := st.addStudent("siti@student.usm.my", "Siti", "158393")

		event := st.addEvent(domain.Event{
			ClubID:          club.ID,
			ProposedPoints:  10,
			Status:          domain.EventCompleted,
			PointStatus:     domain.PointsPending,
			AttendanceToken: "tok-1",
		})

		for _, student := range []domain.User{ali, siti} {
			_, err := attendanceSvc.RecordAttendance(context.Background(), student, "tok-1")
			require.NoError(t, err)
		}

		result, err := svc.AssignPoints(context.Background(), admin, event.ID)

		require.NoError(t, err)
		assert.Equal(t, event.ID, result.EventID)
		assert.Equal(t, 10, result.PointsPerPerson)
		assert.Equal(t, 2, result.StudentsCredited)

		for _, student := range []domain.User{ali, siti} {
			total, err := svc.MyPoints(context.Background(), student)
			require.NoError(t, err)
			assert.Equal(t, 10, total)
		}

		assert.Equal(t, domain.PointsAssigned, st.events[event.ID].PointStatus)
	})

	t.Run("repeating the assignment changes nothing", func(t *testing.T) {
		st := newFakeStore()
		attendanceSvc := NewAttendanceService(&fakeEventRepo{st: st}, &fakeAttendanceRepo{st: st}, &fakeProfileRepo{st: st})
		svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})

		club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
		admin := st.addAdmin(testAdminEmail)
		ali := st.addStudent("ali@student.usm.my", "Ali", "158392")

		event := st.addEvent(domain.Event{
			ClubID:          club.ID,
			ProposedPoints:  10,
			Status:          domain.EventCompleted,
			PointStatus:     domain.PointsPending,
			AttendanceToken: "tok-1",
		})
		_, err := attendanceSvc.RecordAttendance(context.Background(), ali, "tok-1")
		require.NoError(t, err)

		_, err = svc.AssignPoints(context.Background(), admin, event.ID)
		require.NoError(t, err)

		_, err = svc.AssignPoints(context.Background(), admin, event.ID)
		assert.ErrorIs(t, err, ErrAlreadyAssigned)

		total, err := svc.MyPoints(context.Background(), ali)
		require.NoError(t, err)
		assert.Equal(t, 10, total, "no duplicate credits")
	})

	t.Run("late attendee after assignment stays uncredited", func(t *testing.T) {
		st := newFakeStore()
		attendanceSvc := NewAttendanceService(&fakeEventRepo{st: st}, &fakeAttendanceRepo{st: st}, &fakeProfileRepo{st: st})
		svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})

		club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
		admin := st.addAdmin(testAdminEmail)
		late := st.addStudent("late@student.usm.my", "Late", "158394")

		event := st.addEvent(domain.Event{
			ClubID:          club.ID,
			ProposedPoints:  10,
			Status:          domain.EventCompleted,
			PointStatus:     domain.PointsPending,
			AttendanceToken: "tok-1",
		})

		_, err := svc.AssignPoints(context.Background(), admin, event.ID)
		require.NoError(t, err)

		record, err := attendanceSvc.RecordAttendance(context.Background(), late, "tok-1")
		require.NoError(t, err, "completed events still accept attendance")
		assert.Equal(t, domain.PointsPending, record.Credited)

		total, err := svc.MyPoints(context.Background(), late)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("record landing mid-assignment stays pending and uncredited", func(t *testing.T) {
		st := newFakeStore()
		attendanceSvc := NewAttendanceService(&fakeEventRepo{st: st}, &fakeAttendanceRepo{st: st}, &fakeProfileRepo{st: st})
		pointsRepo := &fakePointsRepo{st: st}
		svc := NewPointsService(pointsRepo, &fakeEventRepo{st: st})

		club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
		admin := st.addAdmin(testAdminEmail)
		ali := st.addStudent("ali@student.usm.my", "Ali", "158392")
		racer := st.addStudent("racer@student.usm.my", "Racer", "158395")

		event := st.addEvent(domain.Event{
			ClubID:          club.ID,
			ProposedPoints:  10,
			Status:          domain.EventCompleted,
			PointStatus:     domain.PointsPending,
			AttendanceToken: "tok-1",
		})
		_, err := attendanceSvc.RecordAttendance(context.Background(), ali, "tok-1")
		require.NoError(t, err)

		pointsRepo.betweenReadAndFlip = func() {
			_, err := attendanceSvc.RecordAttendance(context.Background(), racer, "tok-1")
			require.NoError(t, err)
		}

		result, err := svc.AssignPoints(context.Background(), admin, event.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, result.StudentsCredited, "only the records read inside the transaction are credited")

		for _, record := range st.attendances {
			if record.StudentID == racer.ID {
				assert.Equal(t, domain.PointsPending, record.Credited, "racing record must not be flipped without a credit")
			}
		}

		total, err := svc.MyPoints(context.Background(), racer)
		require.NoError(t, err)
		assert.Zero(t, total)

		total, err = svc.MyPoints(context.Background(), ali)
		require.NoError(t, err)
		assert.Equal(t, 10, total)
	})

	t.Run("refuses events that are not completed", func(t *testing.T) {
		st := newFakeStore()
		svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})
		club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
		admin := st.addAdmin(testAdminEmail)
		event := st.addEvent(domain.Event{ClubID: club.ID, Status: domain.EventApproved, PointStatus: domain.PointsPending})

		_, err := svc.AssignPoints(context.Background(), admin, event.ID)

		var refused *domain.AssignmentRefusedError
		require.ErrorAs(t, err, &refused)
		assert.Equal(t, domain.RefusalNotCompleted, refused.Reason)
		assert.Equal(t, domain.PointsPending, st.events[event.ID].PointStatus, "nothing changed")
	})

	t.Run("refuses non-admin callers", func(t *testing.T) {
		st := newFakeStore()
		svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})
		club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
		event := st.addEvent(domain.Event{ClubID: club.ID, Status: domain.EventCompleted, PointStatus: domain.PointsPending})

		_, err := svc.AssignPoints(context.Background(), club, event.ID)

		var refused *domain.AssignmentRefusedError
		require.ErrorAs(t, err, &refused)
		assert.Equal(t, domain.RefusalNotAdmin, refused.Reason)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		st := newFakeStore()
		repo := &fakePointsRepo{st: st, transientFailures: 2}
		svc := NewPointsService(repo, &fakeEventRepo{st: st})
		club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
		admin := st.addAdmin(testAdminEmail)
		event := st.addEvent(domain.Event{ClubID: club.ID, ProposedPoints: 5, Status: domain.EventCompleted, PointStatus: domain.PointsPending})

		result, err := svc.AssignPoints(context.Background(), admin, event.ID)

		require.NoError(t, err)
		assert.Equal(t, event.ID, result.EventID)
	})

	t.Run("gives up after bounded retries", func(t *testing.T) {
		st := newFakeStore()
		repo := &fakePointsRepo{st: st, transientFailures: assignRetries}
		svc := NewPointsService(repo, &fakeEventRepo{st: st})
		admin := st.addAdmin(testAdminEmail)

		_, err := svc.AssignPoints(context.Background(), admin, 1)

		assert.ErrorIs(t, err, ErrTransient)
	})

	t.Run("unknown event", func(t *testing.T) {
		st := newFakeStore()
		svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})
		admin := st.addAdmin(testAdminEmail)

		_, err := svc.AssignPoints(context.Background(), admin, 9999)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestPointsService_MyPoints(t *testing.T) {
	st := newFakeStore()
	svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")
	club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")

	st.credits = append(st.credits,
		domain.PointCredit{StudentID: student.ID, EventID: 1, Amount: 10},
		domain.PointCredit{StudentID: student.ID, EventID: 2, Amount: 5},
		domain.PointCredit{StudentID: 999, EventID: 1, Amount: 7},
	)

	t.Run("sums only the caller's credits", func(t *testing.T) {
		total, err := svc.MyPoints(context.Background(), student)

		require.NoError(t, err)
		assert.Equal(t, 15, total)
	})

	t.Run("non-students are refused", func(t *testing.T) {
		_, err := svc.MyPoints(context.Background(), club)

		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestPointsService_MyCredits(t *testing.T) {
	st := newFakeStore()
	svc := NewPointsService(&fakePointsRepo{st: st}, &fakeEventRepo{st: st})
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")
	club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")
	event := st.addEvent(domain.Event{ClubID: club.ID, Title: "Tournament", Status: domain.EventCompleted})

	st.credits = append(st.credits,
		domain.PointCredit{StudentID: student.ID, EventID: event.ID, Amount: 10},
		domain.PointCredit{StudentID: student.ID, EventID: 9999, Amount: 5},
	)

	credits, err := svc.MyCredits(context.Background(), student)

	require.NoError(t, err)
	require.Len(t, credits, 2)
	assert.Equal(t, "Tournament", credits[0].EventTitle)
	assert.Empty(t, credits[1].EventTitle, "vanished events do not fail the listing")
}
