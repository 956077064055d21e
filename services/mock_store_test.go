package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"school-appointment-api/models"
)

// mockAppointmentStore keeps appointments in a map and mimics the schema
// defaults the real store relies on.

type mockAppointmentStore struct {
	appointments  map[uuid.UUID]*models.Appointment
	createErr     error
	transitionErr error
}

func newMockAppointmentStore() *mockAppointmentStore {
	return &mockAppointmentStore{appointments: make(map[uuid.UUID]*models.Appointment)}
}

func (m *mockAppointmentStore) Create(a *models.Appointment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ApprovalStatus == "" {
		a.ApprovalStatus = models.ApprovalPending
	}
	stored := *a
	m.appointments[a.ID] = &stored
	return nil
}

func (m *mockAppointmentStore) GetByID(id uuid.UUID) (*models.Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	found := *a
	return &found, nil
}

func (m *mockAppointmentStore) ListForStudent(studentID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	return m.list(func(a *models.Appointment) bool { return a.StudentID == studentID }, from, to), nil
}

func (m *mockAppointmentStore) ListForTeacher(teacherID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	return m.list(func(a *models.Appointment) bool { return a.TeacherID == teacherID }, from, to), nil
}

func (m *mockAppointmentStore) list(owned func(*models.Appointment) bool, from, to time.Time) []models.Appointment {
	var result []models.Appointment
	for _, a := range m.appointments {
		if owned(a) && !a.Time.Before(from) && !a.Time.After(to) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Time.Before(result[j].Time) })
	return result
}

func (m *mockAppointmentStore) Transition(id uuid.UUID, mutate func(*models.Appointment) error) (*models.Appointment, error) {
	if m.transitionErr != nil {
		return nil, m.transitionErr
	}
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	working := *a
	if err := mutate(&working); err != nil {
		return nil, err
	}
	working.Version++
	stored := working
	m.appointments[id] = &stored
	return &working, nil
}

func (m *mockAppointmentStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var deleted int64
	for id, a := range m.appointments {
		if a.Time.Before(cutoff) {
			delete(m.appointments, id)
			deleted++
		}
	}
	return deleted, nil
}

type mockDirectory struct {
	students map[uuid.UUID]*models.Student
	teachers map[uuid.UUID]*models.Teacher
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		students: make(map[uuid.UUID]*models.Student),
		teachers: make(map[uuid.UUID]*models.Teacher),
	}
}

func (m *mockDirectory) StudentByID(id uuid.UUID) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, ErrStudentNotFound
}

func (m *mockDirectory) TeacherByID(id uuid.UUID) (*models.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, ErrTeacherNotFound
}

type eventRecorder struct {
	events []AppointmentEvent
}

func (r *eventRecorder) Publish(event AppointmentEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) lastKind() EventKind {
	if len(r.events) == 0 {
		return ""
	}
	return r.events[len(r.events)-1].Kind
}
