package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"school-appointment-api/models"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrTeacherNotFound     = errors.New("teacher not found")
	ErrNotOwner            = errors.New("appointment belongs to another user")
	ErrTerminalState       = errors.New("appointment is already cancelled or completed")
	ErrNotAccepted         = errors.New("appointment has not been accepted")
	ErrNotElapsed          = errors.New("appointment time has not passed yet")
	ErrInvalidDecision     = errors.New("decision must be accepted or rejected")
	ErrConflict            = errors.New("appointment was modified concurrently")
)

// AppointmentStore is the persistence surface the lifecycle logic needs.
// The GORM implementation lives in the database package.
type AppointmentStore interface {
	Create(appointment *models.Appointment) error
	GetByID(id uuid.UUID) (*models.Appointment, error)
	ListForStudent(studentID uuid.UUID, from, to time.Time) ([]models.Appointment, error)
	ListForTeacher(teacherID uuid.UUID, from, to time.Time) ([]models.Appointment, error)
	// Transition loads the appointment under lock, applies mutate and
	// persists the result with a version bump. A lost race surfaces as
	// ErrConflict; an error from mutate aborts without writing.
	Transition(id uuid.UUID, mutate func(*models.Appointment) error) (*models.Appointment, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// ActorDirectory resolves the display name and contact email of the two
// parties; Create fails when either id is unknown.
type ActorDirectory interface {
	StudentByID(id uuid.UUID) (*models.Student, error)
	TeacherByID(id uuid.UUID) (*models.Teacher, error)
}

type AppointmentService struct {
	store  AppointmentStore
	dir    ActorDirectory
	events EventPublisher
	now    func() time.Time
}

// Appointments is the process-wide service instance, set up in main.
var Appointments *AppointmentService

func NewAppointmentService(store AppointmentStore, dir ActorDirectory, events EventPublisher, now func() time.Time) *AppointmentService {
	if now == nil {
		now = time.Now
	}
	return &AppointmentService{store: store, dir: dir, events: events, now: now}
}

func InitAppointmentService(store AppointmentStore, dir ActorDirectory, events EventPublisher) {
	Appointments = NewAppointmentService(store, dir, events, time.Now)
}

type CreateAppointmentInput struct {
	StudentID uuid.UUID
	TeacherID uuid.UUID
	Time      time.Time
	Subject   string
	Message   *string
}

// Create persists a new appointment in the upcoming/pending state. Names
// are denormalized from the directory at creation time and are not kept in
// sync with later renames.
func (s *AppointmentService) Create(in CreateAppointmentInput) (*models.Appointment, error) {
	student, err := s.dir.StudentByID(in.StudentID)
	if err != nil {
		return nil, err
	}
	teacher, err := s.dir.TeacherByID(in.TeacherID)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		StudentID:   student.ID,
		TeacherID:   teacher.ID,
		StudentName: student.Name,
		TeacherName: teacher.Name,
		Subject:     in.Subject,
		Message:     in.Message,
		Time:        in.Time,
		Status:      models.StatusUpcoming,
	}
	// ApprovalStatus is left to the schema default ('pending').
	if err := s.store.Create(appointment); err != nil {
		return nil, err
	}

	s.publish(EventAppointmentRequested, appointment)
	return appointment, nil
}

func (s *AppointmentService) GetByID(id uuid.UUID) (*models.Appointment, error) {
	return s.store.GetByID(id)
}

// ListForStudent returns the student's appointments inside the rolling
// display window, ascending by time. Records outside the window stay in
// storage and remain reachable by id.
func (s *AppointmentService) ListForStudent(studentID uuid.UUID) ([]models.Appointment, error) {
	from, to := s.displayWindow()
	return s.store.ListForStudent(studentID, from, to)
}

func (s *AppointmentService) ListForTeacher(teacherID uuid.UUID) ([]models.Appointment, error) {
	from, to := s.displayWindow()
	return s.store.ListForTeacher(teacherID, from, to)
}

func (s *AppointmentService) displayWindow() (time.Time, time.Time) {
	now := s.now()
	return now.AddDate(0, -1, 0), now.AddDate(0, 1, 0)
}

// Decide records the teacher's decision. A rejection also cancels the
// appointment. Cancelled and completed appointments are terminal: deciding
// one fails with ErrTerminalState rather than resurrecting it as upcoming.
func (s *AppointmentService) Decide(id, teacherID uuid.UUID, decision string) (*models.Appointment, error) {
	if decision != models.ApprovalAccepted && decision != models.ApprovalRejected {
		return nil, ErrInvalidDecision
	}

	appointment, err := s.store.Transition(id, func(a *models.Appointment) error {
		if a.TeacherID != teacherID {
			return ErrNotOwner
		}
		if a.Terminal() {
			return ErrTerminalState
		}
		a.ApprovalStatus = decision
		if decision == models.ApprovalRejected {
			now := s.now()
			a.Status = models.StatusCancelled
			a.CancelledAt = &now
		} else {
			a.Status = models.StatusUpcoming
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(EventAppointmentDecided, appointment)
	return appointment, nil
}

// Cancel is the student-initiated cancellation. It applies regardless of
// the current approval status but not to terminal appointments.
func (s *AppointmentService) Cancel(id, studentID uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.store.Transition(id, func(a *models.Appointment) error {
		if a.StudentID != studentID {
			return ErrNotOwner
		}
		if a.Terminal() {
			return ErrTerminalState
		}
		now := s.now()
		a.Status = models.StatusCancelled
		a.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(EventAppointmentCancelled, appointment)
	return appointment, nil
}

// Complete marks an accepted appointment as held, once its time has passed.
func (s *AppointmentService) Complete(id, teacherID uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.store.Transition(id, func(a *models.Appointment) error {
		if a.TeacherID != teacherID {
			return ErrNotOwner
		}
		if a.Terminal() {
			return ErrTerminalState
		}
		if a.ApprovalStatus != models.ApprovalAccepted {
			return ErrNotAccepted
		}
		now := s.now()
		if a.Time.After(now) {
			return ErrNotElapsed
		}
		a.Status = models.StatusCompleted
		a.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(EventAppointmentCompleted, appointment)
	return appointment, nil
}

// Sweep hard-deletes every appointment older than the two-month retention
// cutoff and returns how many rows went. Re-running with the same now is a
// no-op.
func (s *AppointmentService) Sweep(now time.Time) (int64, error) {
	return s.store.DeleteOlderThan(now.AddDate(0, -2, 0))
}

func (s *AppointmentService) publish(kind EventKind, appointment *models.Appointment) {
	if s.events == nil {
		return
	}
	s.events.Publish(AppointmentEvent{Kind: kind, Appointment: *appointment})
}
