package services

import (
	"log"
	"sync"

	"school-appointment-api/models"
)

type EventKind string

const (
	EventAppointmentRequested EventKind = "appointment_requested"
	EventAppointmentDecided   EventKind = "appointment_decided"
	EventAppointmentCancelled EventKind = "appointment_cancelled"
	EventAppointmentCompleted EventKind = "appointment_completed"
)

// AppointmentEvent is emitted after a state transition has been persisted.
// Subscribers (mail, dashboard push) run off the write path: a failing
// subscriber never affects the transition that produced the event.
type AppointmentEvent struct {
	Kind        EventKind          `json:"kind"`
	Appointment models.Appointment `json:"appointment"`
}

type EventPublisher interface {
	Publish(event AppointmentEvent)
}

type EventBus struct {
	mu   sync.RWMutex
	subs []func(AppointmentEvent)
	ch   chan AppointmentEvent
}

func NewEventBus() *EventBus {
	bus := &EventBus{ch: make(chan AppointmentEvent, 64)}
	go bus.run()
	return bus
}

func (b *EventBus) Subscribe(fn func(AppointmentEvent)) {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Publish never blocks the caller. Events are best-effort: if the buffer is
// full the event is dropped and logged, matching the at-most-once contract
// of the notification side effects.
func (b *EventBus) Publish(event AppointmentEvent) {
	select {
	case b.ch <- event:
	default:
		log.Printf("Event buffer full, dropping %s for appointment %s", event.Kind, event.Appointment.ID)
	}
}

func (b *EventBus) run() {
	for event := range b.ch {
		b.mu.RLock()
		subs := b.subs
		b.mu.RUnlock()
		for _, fn := range subs {
			fn(event)
		}
	}
}
