package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"school-appointment-api/models"
	"school-appointment-api/services"
)

var (
	handlerTestNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	testStudentID = uuid.MustParse("6f1b0a52-9a74-4a43-8c2f-111111111111")
	testTeacherID = uuid.MustParse("b4f0c1d8-3e21-4f76-9a5d-222222222222")
	otherUserID   = uuid.MustParse("0c9d8e7f-6a5b-4c3d-8e1f-333333333333")
)

// stubStore is a map-backed services.AppointmentStore, enough for exercising
// the request plumbing.
type stubStore struct {
	appointments map[uuid.UUID]*models.Appointment
}

func newStubStore() *stubStore {
	return &stubStore{appointments: make(map[uuid.UUID]*models.Appointment)}
}

func (s *stubStore) Create(a *models.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ApprovalStatus == "" {
		a.ApprovalStatus = models.ApprovalPending
	}
	stored := *a
	s.appointments[a.ID] = &stored
	return nil
}

func (s *stubStore) GetByID(id uuid.UUID) (*models.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, services.ErrAppointmentNotFound
	}
	found := *a
	return &found, nil
}

func (s *stubStore) ListForStudent(studentID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubStore) ListForTeacher(teacherID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubStore) Transition(id uuid.UUID, mutate func(*models.Appointment) error) (*models.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, services.ErrAppointmentNotFound
	}
	working := *a
	if err := mutate(&working); err != nil {
		return nil, err
	}
	working.Version++
	stored := working
	s.appointments[id] = &stored
	return &working, nil
}

func (s *stubStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	return 0, nil
}

type stubDirectory struct{}

func (stubDirectory) StudentByID(id uuid.UUID) (*models.Student, error) {
	if id != testStudentID {
		return nil, services.ErrStudentNotFound
	}
	return &models.Student{ID: id, Name: "Amelia Okori", Email: "amelia@example.com"}, nil
}

func (stubDirectory) TeacherByID(id uuid.UUID) (*models.Teacher, error) {
	if id != testTeacherID {
		return nil, services.ErrTeacherNotFound
	}
	return &models.Teacher{ID: id, Name: "David Mwangi", Email: "david@example.com"}, nil
}

// sessionAs stands in for the JWT middleware, placing a parsed token in
// Locals the way jwtware does after verification.
func sessionAs(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID.String(),
		}))
		return c.Next()
	}
}

func lifecycleTestApp(userID uuid.UUID) (*fiber.App, *stubStore) {
	store := newStubStore()
	services.Appointments = services.NewAppointmentService(store, stubDirectory{}, nil, func() time.Time {
		return handlerTestNow
	})

	app := fiber.New()
	app.Post("/appointments", sessionAs(userID), CreateAppointment)
	app.Get("/appointments/:appointmentId", sessionAs(userID), GetAppointment)
	app.Put("/teacher/appointments/:appointmentId/decision", sessionAs(userID), DecideAppointment)
	return app, store
}

func TestServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"appointment not found", services.ErrAppointmentNotFound, fiber.StatusNotFound},
		{"student not found", services.ErrStudentNotFound, fiber.StatusNotFound},
		{"teacher not found", services.ErrTeacherNotFound, fiber.StatusNotFound},
		{"not owner", services.ErrNotOwner, fiber.StatusForbidden},
		{"terminal state", services.ErrTerminalState, fiber.StatusConflict},
		{"write conflict", services.ErrConflict, fiber.StatusConflict},
		{"not accepted", services.ErrNotAccepted, fiber.StatusBadRequest},
		{"not elapsed", services.ErrNotElapsed, fiber.StatusBadRequest},
		{"invalid decision", services.ErrInvalidDecision, fiber.StatusBadRequest},
		{"store failure", errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/fail", func(c *fiber.Ctx) error {
				return serviceError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("got status %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestCreateAppointment(t *testing.T) {
	app, store := lifecycleTestApp(testStudentID)

	body := `{"teacher_id":"` + testTeacherID.String() + `","time":"2026-03-20T10:00:00Z","subject":"Algebra"}`
	req := httptest.NewRequest("POST", "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("got status %d, want 201", resp.StatusCode)
	}

	var created models.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.StudentID != testStudentID {
		t.Errorf("student id not taken from the session: got %s", created.StudentID)
	}
	if created.ApprovalStatus != models.ApprovalPending {
		t.Errorf("new appointment should be pending, got %q", created.ApprovalStatus)
	}
	if _, ok := store.appointments[created.ID]; !ok {
		t.Error("appointment was not persisted")
	}
}

func TestCreateAppointment_UnknownTeacher(t *testing.T) {
	app, _ := lifecycleTestApp(testStudentID)

	body := `{"teacher_id":"` + otherUserID.String() + `","time":"2026-03-20T10:00:00Z","subject":"Algebra"}`
	req := httptest.NewRequest("POST", "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown teacher should be 404, got %d", resp.StatusCode)
	}
}

func seedAppointment(store *stubStore) *models.Appointment {
	a := &models.Appointment{
		ID:             uuid.New(),
		StudentID:      testStudentID,
		TeacherID:      testTeacherID,
		StudentName:    "Amelia Okori",
		TeacherName:    "David Mwangi",
		Subject:        "Algebra",
		Time:           handlerTestNow.AddDate(0, 0, 5),
		Status:         models.StatusUpcoming,
		ApprovalStatus: models.ApprovalPending,
	}
	store.appointments[a.ID] = a
	return a
}

func TestDecideAppointment(t *testing.T) {
	app, store := lifecycleTestApp(testTeacherID)
	seeded := seedAppointment(store)

	req := httptest.NewRequest("PUT", "/teacher/appointments/"+seeded.ID.String()+"/decision",
		strings.NewReader(`{"decision":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var decided models.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&decided); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decided.ApprovalStatus != models.ApprovalAccepted {
		t.Errorf("got approval %q, want accepted", decided.ApprovalStatus)
	}
	if decided.Status != models.StatusUpcoming {
		t.Errorf("accepted appointment should stay upcoming, got %q", decided.Status)
	}
}

func TestDecideAppointment_InvalidDecision(t *testing.T) {
	app, store := lifecycleTestApp(testTeacherID)
	seeded := seedAppointment(store)

	req := httptest.NewRequest("PUT", "/teacher/appointments/"+seeded.ID.String()+"/decision",
		strings.NewReader(`{"decision":"maybe"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("invalid decision should be 400, got %d", resp.StatusCode)
	}
	if store.appointments[seeded.ID].ApprovalStatus != models.ApprovalPending {
		t.Error("rejected request must not change the stored appointment")
	}
}

func TestDecideAppointment_UnknownID(t *testing.T) {
	app, _ := lifecycleTestApp(testTeacherID)

	req := httptest.NewRequest("PUT", "/teacher/appointments/"+uuid.NewString()+"/decision",
		strings.NewReader(`{"decision":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown appointment should be 404, got %d", resp.StatusCode)
	}
}

func TestDecideAppointment_WrongTeacher(t *testing.T) {
	app, store := lifecycleTestApp(otherUserID)
	seeded := seedAppointment(store)

	req := httptest.NewRequest("PUT", "/teacher/appointments/"+seeded.ID.String()+"/decision",
		strings.NewReader(`{"decision":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("another teacher's session should be 403, got %d", resp.StatusCode)
	}
}

func TestGetAppointment_OwnershipFromSession(t *testing.T) {
	app, store := lifecycleTestApp(otherUserID)
	seeded := seedAppointment(store)

	// A session belonging to neither party may not read the appointment.
	resp, err := app.Test(httptest.NewRequest("GET", "/appointments/"+seeded.ID.String(), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("third party should be 403, got %d", resp.StatusCode)
	}

	app, store = lifecycleTestApp(testStudentID)
	seeded = seedAppointment(store)
	resp, err = app.Test(httptest.NewRequest("GET", "/appointments/"+seeded.ID.String(), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("the booking student should be 200, got %d", resp.StatusCode)
	}
}
