package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usmcsd/mycsd-api/internal/domain"
)

func newGoalFixture(t *testing.T) (*fakeStore, *GoalService) {
	t.Helper()
	st := newFakeStore()
	svc := NewGoalService(&fakeGoalRepo{st: st}, &fakePointsRepo{st: st})
	return st, svc
}

func TestGoalService_CreateGoal(t *testing.T) {
	st, svc := newGoalFixture(t)
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")
	club := st.addClub("chess@club.usm.my", "Chess Club", "Chess Club")

	t.Run("short-term goal keeps its deadline", func(t *testing.T) {
		deadline := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

		goal, err := svc.CreateGoal(context.Background(), student, domain.Goal{
			Kind:         domain.GoalShortTerm,
			Title:        "Join three events",
			TargetPoints: 30,
			Deadline:     &deadline,
			Completed:    true, // cannot be created already done
		})

		require.NoError(t, err)
		assert.Equal(t, student.ID, goal.StudentID)
		require.NotNil(t, goal.Deadline)
		assert.False(t, goal.Completed)
	})

	t.Run("long-term goal drops any deadline", func(t *testing.T) {
		deadline := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

		goal, err := svc.CreateGoal(context.Background(), student, domain.Goal{
			Kind:         domain.GoalLongTerm,
			Title:        "Graduate with 100 points",
			TargetPoints: 100,
			Deadline:     &deadline,
		})

		require.NoError(t, err)
		assert.Nil(t, goal.Deadline)
	})

	t.Run("only students have goals", func(t *testing.T) {
		_, err := svc.CreateGoal(context.Background(), club, domain.Goal{Kind: domain.GoalShortTerm, Title: "Nope", TargetPoints: 1})

		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestGoalService_ListGoals(t *testing.T) {
	st, svc := newGoalFixture(t)
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")

	_, err := svc.CreateGoal(context.Background(), student, domain.Goal{
		Kind: domain.GoalLongTerm, Title: "Long", TargetPoints: 100,
	})
	require.NoError(t, err)
	_, err = svc.CreateGoal(context.Background(), student, domain.Goal{
		Kind: domain.GoalShortTerm, Title: "Short", TargetPoints: 10,
	})
	require.NoError(t, err)

	st.credits = append(st.credits,
		domain.PointCredit{StudentID: student.ID, EventID: 1, Amount: 40},
	)

	t.Run("long-term progress derives from credits", func(t *testing.T) {
		goals, err := svc.ListGoals(context.Background(), student, "")

		require.NoError(t, err)
		require.Len(t, goals, 2)
		assert.InDelta(t, 0.4, goals[0].Progress, 1e-9)
		assert.Zero(t, goals[1].Progress, "short-term goals track completion manually")
	})

	t.Run("kind filter", func(t *testing.T) {
		goals, err := svc.ListGoals(context.Background(), student, domain.GoalShortTerm)

		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, "Short", goals[0].Title)
	})

	t.Run("progress clamps at 1", func(t *testing.T) {
		st.credits = append(st.credits,
			domain.PointCredit{StudentID: student.ID, EventID: 2, Amount: 500},
		)

		goals, err := svc.ListGoals(context.Background(), student, domain.GoalLongTerm)

		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, 1.0, goals[0].Progress)
	})
}

func TestGoalService_UpdateGoal(t *testing.T) {
	st, svc := newGoalFixture(t)
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")
	intruder := st.addStudent("siti@student.usm.my", "Siti", "158393")

	created, err := svc.CreateGoal(context.Background(), student, domain.Goal{
		Kind: domain.GoalLongTerm, Title: "Long", TargetPoints: 100,
	})
	require.NoError(t, err)

	t.Run("kind and owner are immutable", func(t *testing.T) {
		updated, err := svc.UpdateGoal(context.Background(), student, domain.Goal{
			ID:           created.ID,
			Kind:         domain.GoalShortTerm,
			Title:        "Renamed",
			TargetPoints: 80,
			Completed:    true,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.GoalLongTerm, updated.Kind)
		assert.Equal(t, student.ID, updated.StudentID)
		assert.Equal(t, "Renamed", updated.Title)
		assert.True(t, updated.Completed)
	})

	t.Run("another student cannot touch it", func(t *testing.T) {
		_, err := svc.UpdateGoal(context.Background(), intruder, domain.Goal{ID: created.ID, Title: "Stolen", TargetPoints: 1})

		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("unknown goal", func(t *testing.T) {
		_, err := svc.UpdateGoal(context.Background(), student, domain.Goal{ID: 9999, Title: "Ghost", TargetPoints: 1})

		assert.ErrorIs(t, err, ErrGoalNotFound)
	})
}

func TestGoalService_DeleteGoal(t *testing.T) {
	st, svc := newGoalFixture(t)
	student := st.addStudent("ali@student.usm.my", "Ali", "158392")
	intruder := st.addStudent("siti@student.usm.my", "Siti", "158393")

	created, err := svc.CreateGoal(context.Background(), student, domain.Goal{
		Kind: domain.GoalShortTerm, Title: "Short", TargetPoints: 10,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteGoal(context.Background(), intruder, created.ID), ErrNotAuthorized)

	require.NoError(t, svc.DeleteGoal(context.Background(), student, created.ID))

	assert.ErrorIs(t, svc.DeleteGoal(context.Background(), student, created.ID), ErrGoalNotFound)
}
