package notifications

import (
	"fmt"
	"strings"

	"school-appointment-api/models"
	"school-appointment-api/utils"
)

// The mail bodies are built as pure functions so they can be rendered (and
// tested) without a mail client or a database.

func AppointmentRequestMail(a *models.Appointment) (subject, body string) {
	subject = fmt.Sprintf("Appointment Request from %s: %s", a.StudentName, a.Subject)

	var messageBlock string
	if a.Message != nil && strings.TrimSpace(*a.Message) != "" {
		messageBlock = fmt.Sprintf(
			"<p><b>Student's message:</b></p><p style='white-space:pre-wrap;'>%s</p>",
			strings.TrimSpace(*a.Message),
		)
	}

	body = fmt.Sprintf(
		"<h2>Hello %s,</h2>"+
			"<p>%s has requested a meeting with you.</p>"+
			"<ul>"+
			"<li><b>Subject:</b> %s</li>"+
			"<li><b>Date:</b> %s</li>"+
			"<li><b>Time:</b> %s (UTC)</li>"+
			"</ul>"+
			"%s"+
			"<p>Please respond to this request via the app.</p>"+
			"<p>Best regards,<br/>Appointment Team</p>",
		a.TeacherName,
		a.StudentName,
		a.Subject,
		a.Time.UTC().Format("January 2, 2006"),
		a.Time.UTC().Format("3:04 PM"),
		messageBlock,
	)
	return subject, body
}

func AppointmentDecisionMail(a *models.Appointment) (subject, body string) {
	// Student-facing wording: accepted reads as Approved.
	decision := "Rejected"
	if a.ApprovalStatus == models.ApprovalAccepted {
		decision = "Approved"
	}

	subject = fmt.Sprintf("Your appointment has been %s by %s", decision, a.TeacherName)
	body = fmt.Sprintf(
		"<h2>Hello %s,</h2>"+
			"<p>Your appointment request has been <b>%s</b> by %s.</p>"+
			"<ul>"+
			"<li><b>Subject:</b> %s</li>"+
			"<li><b>Time:</b> %s (UTC)</li>"+
			"</ul>"+
			"<p>You can view more details in the app.</p>"+
			"<p>Best regards,<br/>Appointment Team</p>",
		a.StudentName,
		decision,
		a.TeacherName,
		a.Subject,
		a.Time.UTC().Format("January 2, 2006 at 3:04 PM"),
	)
	return subject, body
}

func TeacherSignInMail(name, link string) (subject, body string) {
	subject = "Your Sign-In Link"
	body = fmt.Sprintf(
		"<h2>Hello %s,</h2>"+
			"<p>Click the link below to sign in. It is valid for %d minutes.</p>"+
			"<p><a href='%s'>Sign In</a></p>"+
			"<p>If you didn't request this, you can safely ignore this email.</p>"+
			"<p>Best regards,<br/>Appointment Team</p>",
		name,
		int(utils.SignInTokenTTL.Minutes()),
		link,
	)
	return subject, body
}

func StudentRegisteredMail(s *models.Student) (subject, body string) {
	subject = "New student registration: please verify"
	body = fmt.Sprintf(
		"<h2>New student registration</h2>"+
			"<p>An account was just created and requires admin verification.</p>"+
			"<ul>"+
			"<li><b>Name:</b> %s</li>"+
			"<li><b>Email:</b> %s</li>"+
			"</ul>"+
			"<p>Best regards,<br/>Appointment Team</p>",
		s.Name,
		s.Email,
	)
	return subject, body
}
