package notifications

import (
	"log"

	"school-appointment-api/database"
	"school-appointment-api/models"
	"school-appointment-api/services"
)

// MailAppointmentEvent is the event-bus subscriber that turns appointment
// state changes into emails. Recipient addresses are looked up here rather
// than carried on the event, so the lifecycle service stays free of mail
// concerns.
func MailAppointmentEvent(event services.AppointmentEvent) {
	a := event.Appointment

	switch event.Kind {
	case services.EventAppointmentRequested:
		var teacher models.Teacher
		if err := database.DB.First(&teacher, "id = ?", a.TeacherID).Error; err != nil {
			log.Printf("Cannot mail appointment request, teacher %s lookup failed: %v", a.TeacherID, err)
			return
		}
		subject, body := AppointmentRequestMail(&a)
		SendEmail(teacher.Name, teacher.Email, subject, body)

	case services.EventAppointmentDecided:
		var student models.Student
		if err := database.DB.First(&student, "id = ?", a.StudentID).Error; err != nil {
			log.Printf("Cannot mail appointment decision, student %s lookup failed: %v", a.StudentID, err)
			return
		}
		subject, body := AppointmentDecisionMail(&a)
		SendEmail(student.Name, student.Email, subject, body)
	}
	// Cancellations and completions reach the parties through the
	// dashboard push; no mail is sent for them.
}

// NotifyAdminsOfRegistration mails every admin about a student account that
// awaits verification.
func NotifyAdminsOfRegistration(student *models.Student) {
	var admins []models.Admin
	if err := database.DB.Find(&admins).Error; err != nil {
		log.Printf("Cannot notify admins of registration: %v", err)
		return
	}
	if len(admins) == 0 {
		log.Println("No admin accounts exist, skipping registration notice")
		return
	}

	subject, body := StudentRegisteredMail(student)
	for _, admin := range admins {
		SendEmail(admin.Name, admin.Email, subject, body)
	}
}
