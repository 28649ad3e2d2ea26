package adapter_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hivemesh/strand/pkg/adapter"
	"github.com/hivemesh/strand/pkg/events"
	"github.com/hivemesh/strand/pkg/graph"
	"github.com/hivemesh/strand/pkg/tools"
)

var _ = Describe("AddMemory", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("in fallback mode", func() {
		var a *adapter.Adapter
		var rec *eventRecorder

		BeforeEach(func() {
			a, rec = newTestAdapter(nil, defaultSettings())
			Expect(a.Start(ctx)).To(Succeed())
		})

		It("assigns a distinct uuid per episode", func() {
			u1, err := a.AddMemory(ctx, "ep-one", "content one", adapter.MemoryOptions{})
			Expect(err).NotTo(HaveOccurred())
			u2, err := a.AddMemory(ctx, "ep-two", "content two", adapter.MemoryOptions{})
			Expect(err).NotTo(HaveOccurred())

			Expect(u1).NotTo(BeEmpty())
			Expect(u2).NotTo(BeEmpty())
			Expect(u1).NotTo(Equal(u2))
		})

		It("queues the episode and emits memory:added", func() {
			uuid, err := a.AddMemory(ctx, "meeting", "Alice leads billing", adapter.MemoryOptions{})
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Statistics().QueuedEpisodes).To(Equal(1))

			added := rec.byType(events.TypeMemoryAdded)
			Expect(added).To(HaveLen(1))
			Expect(added[0].MemoryAdded.Episode.UUID).To(Equal(uuid))
			Expect(added[0].MemoryAdded.Episode.Content).To(Equal("Alice leads billing"))
		})

		It("defaults the group id and source", func() {
			_, err := a.AddMemory(ctx, "ep", "content", adapter.MemoryOptions{})
			Expect(err).NotTo(HaveOccurred())

			ep := rec.byType(events.TypeMemoryAdded)[0].MemoryAdded.Episode
			Expect(ep.GroupID).To(Equal("default"))
			Expect(ep.Source).To(Equal(graph.SourceText))
			Expect(ep.CreatedAt).To(Equal(testClock))
		})

		It("honors explicit options", func() {
			_, err := a.AddMemory(ctx, "ep", `{"k":"v"}`, adapter.MemoryOptions{
				GroupID:           "ops",
				Source:            graph.SourceJSON,
				SourceDescription: "deploy webhook",
			})
			Expect(err).NotTo(HaveOccurred())

			ep := rec.byType(events.TypeMemoryAdded)[0].MemoryAdded.Episode
			Expect(ep.GroupID).To(Equal("ops"))
			Expect(ep.Source).To(Equal(graph.SourceJSON))
			Expect(ep.SourceDescription).To(Equal("deploy webhook"))
		})
	})

	Context("while connected", func() {
		var a *adapter.Adapter
		var rec *eventRecorder
		var fake *fakeInvoker

		BeforeEach(func() {
			fake = newFakeInvoker()
			a, rec = newTestAdapter(fake, defaultSettings())
			Expect(a.Start(ctx)).To(Succeed())
		})

		It("attempts an immediate delivery", func() {
			uuid, err := a.AddMemory(ctx, "ep", "content", adapter.MemoryOptions{})
			Expect(err).NotTo(HaveOccurred())

			calls := fake.callsFor(tools.ToolAddMemory)
			Expect(calls).To(HaveLen(1))
			Expect(calls[0].Params["uuid"]).To(Equal(uuid))
			Expect(calls[0].Params["episode_body"]).To(Equal("content"))
			Expect(calls[0].Params["group_id"]).To(Equal("default"))
		})

		It("keeps the episode queued after a successful delivery", func() {
			_, err := a.AddMemory(ctx, "ep", "content", adapter.MemoryOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Statistics().QueuedEpisodes).To(Equal(1))
		})

		It("surfaces a delivery failure but keeps the episode", func() {
			fake.failWith(tools.ToolAddMemory, fmt.Errorf("remote exploded"))

			uuid, err := a.AddMemory(ctx, "ep", "content", adapter.MemoryOptions{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("remote exploded"))
			Expect(uuid).NotTo(BeEmpty())

			Expect(a.Statistics().QueuedEpisodes).To(Equal(1))
			Expect(rec.byType(events.TypeMemoryAdded)).To(HaveLen(1))
		})
	})

	It("never touches the remote in fallback mode", func() {
		fake := newFakeInvoker()
		fake.probeErr = fmt.Errorf("down")
		a, _ := newTestAdapter(fake, defaultSettings())
		Expect(a.Start(ctx)).To(Succeed())

		_, err := a.AddMemory(ctx, "ep", "content", adapter.MemoryOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fake.callsFor(tools.ToolAddMemory)).To(BeEmpty())
	})

	It("returns ErrDisposed after Destroy", func() {
		a, _ := newTestAdapter(nil, defaultSettings())
		Expect(a.Start(ctx)).To(Succeed())
		Expect(a.Destroy(ctx)).To(Succeed())

		_, err := a.AddMemory(ctx, "ep", "content", adapter.MemoryOptions{})
		Expect(err).To(MatchError(adapter.ErrDisposed))
	})
})

var _ = Describe("GetEpisodes", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("while connected", func() {
		var a *adapter.Adapter
		var fake *fakeInvoker

		BeforeEach(func() {
			fake = newFakeInvoker()
			a, _ = newTestAdapter(fake, defaultSettings())
			Expect(a.Start(ctx)).To(Succeed())
		})

		It("returns the remote episodes", func() {
			fake.respondWith(tools.ToolGetEpisodes,
				`{"episodes":[{"uuid":"r1","name":"remote-ep","group_id":"default"}]}`)

			eps, err := a.GetEpisodes(ctx, "", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(eps).To(HaveLen(1))
			Expect(eps[0].UUID).To(Equal("r1"))

			calls := fake.callsFor(tools.ToolGetEpisodes)
			Expect(calls).To(HaveLen(1))
			Expect(calls[0].Params["group_id"]).To(Equal("default"))
			Expect(calls[0].Params["last_n"]).To(Equal(5))
		})

		It("serves buffered episodes when the remote read fails", func() {
			fake.failWith(tools.ToolAddMemory, fmt.Errorf("write down"))
			_, _ = a.AddMemory(ctx, "local-ep", "content", adapter.MemoryOptions{})

			fake.failWith(tools.ToolGetEpisodes, fmt.Errorf("read down"))

			eps, err := a.GetEpisodes(ctx, "", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(eps).To(HaveLen(1))
			Expect(eps[0].Name).To(Equal("local-ep"))
		})
	})

	Context("in fallback mode", func() {
		var a *adapter.Adapter

		BeforeEach(func() {
			a, _ = newTestAdapter(nil, defaultSettings())
			Expect(a.Start(ctx)).To(Succeed())
		})

		It("returns the most recent lastN buffered episodes, newest last", func() {
			for i := 0; i < 3; i++ {
				_, err := a.AddMemory(ctx, fmt.Sprintf("ep-%d", i), "content", adapter.MemoryOptions{})
				Expect(err).NotTo(HaveOccurred())
			}

			eps, err := a.GetEpisodes(ctx, "", 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(eps).To(HaveLen(2))
			Expect(eps[0].Name).To(Equal("ep-1"))
			Expect(eps[1].Name).To(Equal("ep-2"))
		})

		It("scopes by group id", func() {
			_, _ = a.AddMemory(ctx, "ours", "content", adapter.MemoryOptions{GroupID: "ops"})
			_, _ = a.AddMemory(ctx, "theirs", "content", adapter.MemoryOptions{GroupID: "other"})

			eps, err := a.GetEpisodes(ctx, "ops", 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(eps).To(HaveLen(1))
			Expect(eps[0].Name).To(Equal("ours"))
		})

		It("defaults lastN to the episode window", func() {
			for i := 0; i < adapter.DefaultEpisodeWindow+2; i++ {
				_, _ = a.AddMemory(ctx, fmt.Sprintf("ep-%d", i), "content", adapter.MemoryOptions{})
			}

			eps, err := a.GetEpisodes(ctx, "", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(eps).To(HaveLen(adapter.DefaultEpisodeWindow))
		})
	})

	It("returns ErrDisposed after Destroy", func() {
		a, _ := newTestAdapter(nil, defaultSettings())
		Expect(a.Destroy(ctx)).To(Succeed())

		_, err := a.GetEpisodes(ctx, "", 5)
		Expect(err).To(MatchError(adapter.ErrDisposed))
	})
})
