package adapter_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hivemesh/strand/pkg/adapter"
	"github.com/hivemesh/strand/pkg/events"
	"github.com/hivemesh/strand/pkg/graph"
)

var _ = Describe("UpdateFactValidity", func() {
	var ctx context.Context
	var a *adapter.Adapter
	var rec *eventRecorder

	BeforeEach(func() {
		ctx = context.Background()
		a, rec = newTestAdapter(nil, defaultSettings())
		Expect(a.Start(ctx)).To(Succeed())
	})

	It("invalidates a cached edge and emits fact:updated", func() {
		Expect(a.ObserveEdge(graph.Edge{UUID: "e1", RelationType: "leads"})).To(Succeed())

		until := testClock.Add(-time.Hour)
		Expect(a.UpdateFactValidity("e1", false, &until)).To(Succeed())

		updated := rec.byType(events.TypeFactUpdated)
		Expect(updated).To(HaveLen(1))

		edge := updated[0].FactUpdated.Edge
		Expect(edge.UUID).To(Equal("e1"))
		Expect(edge.Invalid).To(BeTrue())
		Expect(edge.ValidUntil).To(HaveValue(Equal(until)))
		Expect(edge.ValidNow(testClock)).To(BeFalse())
	})

	It("revalidates a previously invalidated edge", func() {
		Expect(a.ObserveEdge(graph.Edge{UUID: "e1", Invalid: true})).To(Succeed())

		Expect(a.UpdateFactValidity("e1", true, nil)).To(Succeed())

		edge := rec.byType(events.TypeFactUpdated)[0].FactUpdated.Edge
		Expect(edge.Invalid).To(BeFalse())
		Expect(edge.ValidUntil).To(BeNil())
		Expect(edge.ValidNow(testClock)).To(BeTrue())
	})

	It("ignores an edge that was never observed", func() {
		Expect(a.UpdateFactValidity("ghost", false, nil)).To(Succeed())
		Expect(rec.byType(events.TypeFactUpdated)).To(BeEmpty())
	})

	It("is a no-op when temporal tracking is disabled", func() {
		settings := defaultSettings()
		settings.TemporalTracking = false
		a, rec := newTestAdapter(nil, settings)
		Expect(a.Start(ctx)).To(Succeed())

		Expect(a.ObserveEdge(graph.Edge{UUID: "e1"})).To(Succeed())
		Expect(a.UpdateFactValidity("e1", false, nil)).To(Succeed())

		Expect(rec.byType(events.TypeFactUpdated)).To(BeEmpty())
	})

	It("returns ErrDisposed after Destroy", func() {
		Expect(a.Destroy(ctx)).To(Succeed())
		Expect(a.UpdateFactValidity("e1", false, nil)).To(MatchError(adapter.ErrDisposed))
	})
})

var _ = Describe("ShareWithHiveMind", func() {
	var ctx context.Context
	var a *adapter.Adapter
	var rec *eventRecorder

	BeforeEach(func() {
		ctx = context.Background()
		a, rec = newTestAdapter(nil, defaultSettings())
		Expect(a.Start(ctx)).To(Succeed())
	})

	It("shares only the uuids that resolve in the cache", func() {
		Expect(a.ObserveNode(graph.Node{UUID: "n1", Name: "alice"})).To(Succeed())
		Expect(a.ObserveNode(graph.Node{UUID: "n2", Name: "bob"})).To(Succeed())

		err := a.ShareWithHiveMind([]string{"n1", "ghost", "n2"}, []string{"swarm-a"})
		Expect(err).NotTo(HaveOccurred())

		shares := rec.byType(events.TypeHiveMindShare)
		Expect(shares).To(HaveLen(1))

		share := shares[0].HiveMindShare
		Expect(share.Nodes).To(HaveLen(2))
		Expect(share.Nodes[0].Name).To(Equal("alice"))
		Expect(share.Nodes[1].Name).To(Equal("bob"))
		Expect(share.Swarms).To(Equal([]string{"swarm-a"}))
		Expect(share.SharedAt).To(Equal(testClock))
	})

	It("emits nothing when no uuid resolves", func() {
		err := a.ShareWithHiveMind([]string{"ghost-1", "ghost-2"}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.byType(events.TypeHiveMindShare)).To(BeEmpty())
	})

	It("returns ErrDisposed after Destroy", func() {
		Expect(a.Destroy(ctx)).To(Succeed())
		Expect(a.ShareWithHiveMind([]string{"n1"}, nil)).To(MatchError(adapter.ErrDisposed))
	})
})

var _ = Describe("Observe", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("populates the cache for fallback reads", func() {
		a, _ := newTestAdapter(nil, defaultSettings())
		Expect(a.Start(ctx)).To(Succeed())

		Expect(a.ObserveNode(graph.Node{UUID: "n1", Name: "alice"})).To(Succeed())
		Expect(a.ObserveEdge(graph.Edge{UUID: "e1"})).To(Succeed())

		stats := a.Statistics()
		Expect(stats.NodeCount).To(Equal(1))
		Expect(stats.EdgeCount).To(Equal(1))
	})

	It("returns ErrDisposed after Destroy", func() {
		a, _ := newTestAdapter(nil, defaultSettings())
		Expect(a.Destroy(ctx)).To(Succeed())

		Expect(a.ObserveNode(graph.Node{UUID: "n1"})).To(MatchError(adapter.ErrDisposed))
		Expect(a.ObserveEdge(graph.Edge{UUID: "e1"})).To(MatchError(adapter.ErrDisposed))
	})
})
