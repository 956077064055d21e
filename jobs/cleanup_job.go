package jobs

import (
	"log"
	"time"

	"school-appointment-api/services"
)

// DeleteOldAppointments hard-deletes appointments whose time is more than
// two months in the past. The cutoff lives in the lifecycle service; this
// job only supplies the clock and the cadence.
func DeleteOldAppointments() {
	log.Println("Running job: DeleteOldAppointments...")

	deleted, err := services.Appointments.Sweep(time.Now())
	if err != nil {
		log.Printf("Error deleting old appointments: %v", err)
		return
	}

	if deleted == 0 {
		log.Println("No old appointments to delete.")
		return
	}

	log.Printf("Deleted %d old appointment(s).", deleted)
}
