package events_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hivemesh/strand/pkg/events"
)

var _ = Describe("Bus", func() {
	var bus *events.Bus

	BeforeEach(func() {
		bus = events.NewBus()
	})

	It("dispatches to every subscriber in registration order", func() {
		var order []string
		bus.Subscribe(func(events.Event) { order = append(order, "first") })
		bus.Subscribe(func(events.Event) { order = append(order, "second") })

		bus.Publish(events.Event{Type: events.TypeConnected})

		Expect(order).To(Equal([]string{"first", "second"}))
	})

	It("delivers the event value to subscribers", func() {
		var got events.Event
		bus.Subscribe(func(ev events.Event) { got = ev })

		bus.Publish(events.Event{Type: events.TypeGraphCleared, ID: "evt_1"})

		Expect(got.Type).To(Equal(events.TypeGraphCleared))
		Expect(got.ID).To(Equal("evt_1"))
	})

	It("stops delivering after unsubscribe", func() {
		calls := 0
		unsubscribe := bus.Subscribe(func(events.Event) { calls++ })

		bus.Publish(events.Event{Type: events.TypeConnected})
		unsubscribe()
		bus.Publish(events.Event{Type: events.TypeConnected})

		Expect(calls).To(Equal(1))
	})

	It("tolerates a double unsubscribe", func() {
		unsubscribe := bus.Subscribe(func(events.Event) {})
		unsubscribe()
		Expect(unsubscribe).NotTo(Panic())
	})

	It("keeps other subscribers alive when one unsubscribes", func() {
		var survivor int
		unsubscribe := bus.Subscribe(func(events.Event) {})
		bus.Subscribe(func(events.Event) { survivor++ })

		unsubscribe()
		bus.Publish(events.Event{Type: events.TypeConnected})

		Expect(survivor).To(Equal(1))
	})

	It("drops publishes after Close", func() {
		calls := 0
		bus.Subscribe(func(events.Event) { calls++ })

		bus.Close()
		bus.Publish(events.Event{Type: events.TypeConnected})

		Expect(calls).To(BeZero())
	})
})
