package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/repository"
)

// fakeStore is a single in-memory backing store shared by the fake
// repositories so scenarios can cross service boundaries, the way the real
// repositories share one database.
type fakeStore struct {
	users       map[uint]domain.User
	students    map[uint]domain.Student
	clubs       map[uint]domain.Club
	events      map[uint]domain.Event
	attendances []domain.AttendanceRecord
	credits     []domain.PointCredit
	goals       map[uint]domain.Goal
	reminders   map[uint]domain.Reminder
	nextID      uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uint]domain.User),
		students:  make(map[uint]domain.Student),
		clubs:     make(map[uint]domain.Club),
		events:    make(map[uint]domain.Event),
		goals:     make(map[uint]domain.Goal),
		reminders: make(map[uint]domain.Reminder),
	}
}

func (st *fakeStore) id() uint {
	st.nextID++
	return st.nextID
}

func (st *fakeStore) addStudent(email, name, matric string) domain.User {
	user := domain.User{ID: st.id(), Email: email, Name: name, Role: domain.RoleStudent}
	st.users[user.ID] = user
	st.students[user.ID] = domain.Student{User: user, Matric: matric}
	return user
}

func (st *fakeStore) addClub(email, name, clubName string) domain.User {
	user := domain.User{ID: st.id(), Email: email, Name: name, Role: domain.RoleClub}
	st.users[user.ID] = user
	st.clubs[user.ID] = domain.Club{User: user, ClubName: clubName}
	return user
}

func (st *fakeStore) addAdmin(email string) domain.User {
	user := domain.User{ID: st.id(), Email: email, Name: "Platform Administrator", Role: domain.RoleAdmin}
	st.users[user.ID] = user
	return user
}

func (st *fakeStore) addEvent(event domain.Event) domain.Event {
	event.ID = st.id()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	st.events[event.ID] = event
	return event
}

type fakeProfileRepo struct {
	st *fakeStore
}

func (r *fakeProfileRepo) CreateStudent(_ context.Context, student domain.Student) (domain.Student, error) {
	if r.emailTaken(student.Email) {
		return domain.Student{}, repository.ErrEmailExists
	}
	student.ID = r.st.id()
	r.st.users[student.ID] = student.User
	r.st.students[student.ID] = student
	return student, nil
}

func (r *fakeProfileRepo) CreateClub(_ context.Context, club domain.Club) (domain.Club, error) {
	if r.emailTaken(club.Email) {
		return domain.Club{}, repository.ErrEmailExists
	}
	club.ID = r.st.id()
	r.st.users[club.ID] = club.User
	r.st.clubs[club.ID] = club
	return club, nil
}

func (r *fakeProfileRepo) CreateAdmin(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	if r.emailTaken(admin.Email) {
		return domain.Admin{}, repository.ErrEmailExists
	}
	admin.ID = r.st.id()
	r.st.users[admin.ID] = admin.User
	return admin, nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.st.users[id]
	if !ok {
		return domain.User{}, repository.ErrProfileNotFound
	}
	return user, nil
}

func (r *fakeProfileRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range r.st.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, repository.ErrProfileNotFound
}

func (r *fakeProfileRepo) FindStudentByUserID(_ context.Context, userID uint) (domain.Student, error) {
	student, ok := r.st.students[userID]
	if !ok {
		return domain.Student{}, repository.ErrProfileNotFound
	}
	return student, nil
}

func (r *fakeProfileRepo) FindClubByUserID(_ context.Context, userID uint) (domain.Club, error) {
	club, ok := r.st.clubs[userID]
	if !ok {
		return domain.Club{}, repository.ErrProfileNotFound
	}
	return club, nil
}

func (r *fakeProfileRepo) CountStudents(_ context.Context) (int, error) {
	return len(r.st.students), nil
}

func (r *fakeProfileRepo) emailTaken(email string) bool {
	for _, user := range r.st.users {
		if strings.EqualFold(user.Email, email) {
			return true
		}
	}
	return false
}

type fakeEventRepo struct {
	st *fakeStore
}

func (r *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	return r.st.addEvent(event), nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.st.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) FindByToken(_ context.Context, token string) (domain.Event, error) {
	for _, event := range r.st.events {
		if event.AttendanceToken != "" && event.AttendanceToken == token {
			return event, nil
		}
	}
	return domain.Event{}, repository.ErrEventNotFound
}

func (r *fakeEventRepo) List(_ context.Context, status domain.EventStatus) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range r.st.events {
		if status == "" || event.Status == status {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (r *fakeEventRepo) ListByClub(_ context.Context, clubID uint, status domain.EventStatus) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range r.st.events {
		if event.ClubID == clubID && (status == "" || event.Status == status) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (r *fakeEventRepo) UpdateStatus(_ context.Context, id uint, from, to domain.EventStatus, token string) (domain.Event, error) {
	event, ok := r.st.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	if event.Status != from {
		return domain.Event{}, domain.ErrInvalidTransition
	}
	event.Status = to
	if token != "" {
		event.AttendanceToken = token
	}
	r.st.events[id] = event
	return event, nil
}

func (r *fakeEventRepo) CountByStatus(_ context.Context, status domain.EventStatus) (int, error) {
	count := 0
	for _, event := range r.st.events {
		if status == "" || event.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeEventRepo) CountByCategory(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, event := range r.st.events {
		counts[event.Category]++
	}
	return counts, nil
}

func (r *fakeEventRepo) ListCreatedSince(_ context.Context, cutoff time.Time) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range r.st.events {
		if !event.CreatedAt.Before(cutoff) {
			events = append(events, event)
		}
	}
	return events, nil
}

type fakeAttendanceRepo struct {
	st *fakeStore
}

func (r *fakeAttendanceRepo) Append(_ context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	for _, existing := range r.st.attendances {
		if existing.EventID == record.EventID && existing.StudentID == record.StudentID {
			return domain.AttendanceRecord{}, repository.ErrAlreadyRecorded
		}
	}
	record.ID = r.st.id()
	r.st.attendances = append(r.st.attendances, record)
	return record, nil
}

func (r *fakeAttendanceRepo) ListByEvent(_ context.Context, eventID uint) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	for _, record := range r.st.attendances {
		if record.EventID == eventID {
			records = append(records, record)
		}
	}
	return records, nil
}

// fakePointsRepo mirrors the transactional assignment the real store does
// with row locks: preconditions re-checked, credits appended, both statuses
// flipped, all or nothing.
type fakePointsRepo struct {
	st *fakeStore

	// transientFailures makes the next N Assign calls fail with ErrTransient
	// before touching state, to exercise the retry loop.
	transientFailures int

	// betweenReadAndFlip, when set, runs after the pending records are read
	// but before credits are written, standing in for a concurrent commit.
	betweenReadAndFlip func()
}

func (r *fakePointsRepo) Assign(_ context.Context, eventID uint) (domain.AssignmentResult, error) {
	if r.transientFailures > 0 {
		r.transientFailures--
		return domain.AssignmentResult{}, repository.ErrTransient
	}

	event, ok := r.st.events[eventID]
	if !ok {
		return domain.AssignmentResult{}, repository.ErrEventNotFound
	}
	if event.Status != domain.EventCompleted {
		return domain.AssignmentResult{}, repository.ErrEventNotCompleted
	}
	if event.PointStatus == domain.PointsAssigned {
		return domain.AssignmentResult{}, repository.ErrPointsAssigned
	}

	var pending []uint
	for _, record := range r.st.attendances {
		if record.EventID == eventID && record.Credited == domain.PointsPending {
			pending = append(pending, record.ID)
		}
	}

	if r.betweenReadAndFlip != nil {
		r.betweenReadAndFlip()
	}

	read := make(map[uint]bool, len(pending))
	for _, id := range pending {
		read[id] = true
	}

	credited := 0
	for i, record := range r.st.attendances {
		if !read[record.ID] {
			continue
		}
		r.st.credits = append(r.st.credits, domain.PointCredit{
			ID:        r.st.id(),
			StudentID: record.StudentID,
			EventID:   eventID,
			Amount:    event.ProposedPoints,
			CreatedAt: time.Now(),
		})
		r.st.attendances[i].Credited = domain.PointsAssigned
		credited++
	}

	event.PointStatus = domain.PointsAssigned
	r.st.events[eventID] = event

	return domain.AssignmentResult{
		EventID:          eventID,
		PointsPerPerson:  event.ProposedPoints,
		StudentsCredited: credited,
	}, nil
}

func (r *fakePointsRepo) TotalForStudent(_ context.Context, studentID uint) (int, error) {
	total := 0
	for _, credit := range r.st.credits {
		if credit.StudentID == studentID {
			total += credit.Amount
		}
	}
	return total, nil
}

func (r *fakePointsRepo) ListForStudent(_ context.Context, studentID uint) ([]domain.PointCredit, error) {
	var credits []domain.PointCredit
	for _, credit := range r.st.credits {
		if credit.StudentID == studentID {
			credits = append(credits, credit)
		}
	}
	return credits, nil
}

func (r *fakePointsRepo) TotalAwarded(_ context.Context) (int, error) {
	total := 0
	for _, credit := range r.st.credits {
		total += credit.Amount
	}
	return total, nil
}

func (r *fakePointsRepo) ListCreatedSince(_ context.Context, cutoff time.Time) ([]domain.PointCredit, error) {
	var credits []domain.PointCredit
	for _, credit := range r.st.credits {
		if !credit.CreatedAt.Before(cutoff) {
			credits = append(credits, credit)
		}
	}
	return credits, nil
}

type fakeGoalRepo struct {
	st *fakeStore
}

func (r *fakeGoalRepo) Create(_ context.Context, goal domain.Goal) (domain.Goal, error) {
	goal.ID = r.st.id()
	goal.CreatedAt = time.Now()
	r.st.goals[goal.ID] = goal
	return goal, nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id uint) (domain.Goal, error) {
	goal, ok := r.st.goals[id]
	if !ok {
		return domain.Goal{}, repository.ErrGoalNotFound
	}
	return goal, nil
}

func (r *fakeGoalRepo) ListByStudent(_ context.Context, studentID uint, kind domain.GoalKind) ([]domain.Goal, error) {
	var goals []domain.Goal
	for _, goal := range r.st.goals {
		if goal.StudentID == studentID && (kind == "" || goal.Kind == kind) {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal domain.Goal) (domain.Goal, error) {
	if _, ok := r.st.goals[goal.ID]; !ok {
		return domain.Goal{}, repository.ErrGoalNotFound
	}
	r.st.goals[goal.ID] = goal
	return goal, nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.st.goals[id]; !ok {
		return repository.ErrGoalNotFound
	}
	delete(r.st.goals, id)
	return nil
}

type fakeReminderRepo struct {
	st *fakeStore
}

func (r *fakeReminderRepo) Create(_ context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	reminder.ID = r.st.id()
	reminder.CreatedAt = time.Now()
	r.st.reminders[reminder.ID] = reminder
	return reminder, nil
}

func (r *fakeReminderRepo) FindByID(_ context.Context, id uint) (domain.Reminder, error) {
	reminder, ok := r.st.reminders[id]
	if !ok {
		return domain.Reminder{}, repository.ErrReminderNotFound
	}
	return reminder, nil
}

func (r *fakeReminderRepo) ListByStudent(_ context.Context, studentID uint) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	for _, reminder := range r.st.reminders {
		if reminder.StudentID == studentID {
			reminders = append(reminders, reminder)
		}
	}
	sort.Slice(reminders, func(i, j int) bool { return reminders[i].ID < reminders[j].ID })
	return reminders, nil
}

func (r *fakeReminderRepo) ListUpcoming(_ context.Context, studentID uint, cutoff time.Time) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	for _, reminder := range r.st.reminders {
		if reminder.StudentID == studentID && !reminder.Date.Before(cutoff) {
			reminders = append(reminders, reminder)
		}
	}
	sort.Slice(reminders, func(i, j int) bool {
		if !reminders[i].Date.Equal(reminders[j].Date) {
			return reminders[i].Date.Before(reminders[j].Date)
		}
		return reminders[i].Time < reminders[j].Time
	})
	return reminders, nil
}

func (r *fakeReminderRepo) Update(_ context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	if _, ok := r.st.reminders[reminder.ID]; !ok {
		return domain.Reminder{}, repository.ErrReminderNotFound
	}
	r.st.reminders[reminder.ID] = reminder
	return reminder, nil
}

func (r *fakeReminderRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.st.reminders[id]; !ok {
		return repository.ErrReminderNotFound
	}
	delete(r.st.reminders, id)
	return nil
}
