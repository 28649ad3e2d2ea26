package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bus bookkeeping", func() {
	It("drops unsubscribed ids from the dispatch order", func() {
		b := NewBus()
		for i := 0; i < 64; i++ {
			b.Subscribe(func(Event) {})()
		}
		unsub := b.Subscribe(func(Event) {})
		defer unsub()

		b.mu.RLock()
		defer b.mu.RUnlock()
		Expect(b.order).To(HaveLen(1))
		Expect(b.subs).To(HaveLen(1))
	})

	It("compacts only the unsubscribed id", func() {
		b := NewBus()
		first := b.Subscribe(func(Event) {})
		second := b.Subscribe(func(Event) {})
		defer second()
		third := b.Subscribe(func(Event) {})
		defer third()

		first()
		first()

		b.mu.RLock()
		defer b.mu.RUnlock()
		Expect(b.order).To(HaveLen(2))
		Expect(b.subs).To(HaveLen(2))
	})
})
