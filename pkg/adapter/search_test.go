package adapter_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hivemesh/strand/pkg/adapter"
	"github.com/hivemesh/strand/pkg/graph"
	"github.com/hivemesh/strand/pkg/tools"
)

var _ = Describe("SearchNodes", func() {
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

		It("passes the remote result and relevance through", func() {
			fake.respondWith(tools.ToolSearchMemoryNodes,
				`{"nodes":[{"uuid":"n1","name":"alice"}],"relevance_score":0.87}`)

			result, err := a.SearchNodes(ctx, "alice", adapter.SearchOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nodes).To(HaveLen(1))
			Expect(result.Nodes[0].Name).To(Equal("alice"))
			Expect(result.RelevanceScore).To(BeNumerically("==", 0.87))
		})

		It("scopes to the default group and configured max nodes", func() {
			_, err := a.SearchNodes(ctx, "alice", adapter.SearchOptions{})
			Expect(err).NotTo(HaveOccurred())

			calls := fake.callsFor(tools.ToolSearchMemoryNodes)
			Expect(calls).To(HaveLen(1))
			Expect(calls[0].Params["query"]).To(Equal("alice"))
			Expect(calls[0].Params["group_ids"]).To(Equal([]string{"default"}))
			Expect(calls[0].Params["max_nodes"]).To(Equal(10))
			Expect(calls[0].Params).NotTo(HaveKey("entity"))
			Expect(calls[0].Params).NotTo(HaveKey("center_node_uuid"))
		})

		It("forwards explicit groups, entity, and center node", func() {
			_, err := a.SearchNodes(ctx, "alice", adapter.SearchOptions{
				GroupIDs:       []string{"ops", "eng"},
				Limit:          3,
				Entity:         "Person",
				CenterNodeUUID: "n42",
			})
			Expect(err).NotTo(HaveOccurred())

			params := fake.callsFor(tools.ToolSearchMemoryNodes)[0].Params
			Expect(params["group_ids"]).To(Equal([]string{"ops", "eng"}))
			Expect(params["max_nodes"]).To(Equal(3))
			Expect(params["entity"]).To(Equal("Person"))
			Expect(params["center_node_uuid"]).To(Equal("n42"))
		})

		It("degrades to the cache when the remote search fails", func() {
			Expect(a.ObserveNode(graph.Node{UUID: "n1", Name: "alice"})).To(Succeed())
			fake.failWith(tools.ToolSearchMemoryNodes, fmt.Errorf("search down"))

			result, err := a.SearchNodes(ctx, "alice", adapter.SearchOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nodes).To(HaveLen(1))
			Expect(result.RelevanceScore).To(BeNumerically("==", 0.5))
		})

		It("degrades to the cache on an undecodable payload", func() {
			fake.respondWith(tools.ToolSearchMemoryNodes, `not json`)

			result, err := a.SearchNodes(ctx, "alice", adapter.SearchOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nodes).To(BeEmpty())
			Expect(result.RelevanceScore).To(BeZero())
		})
	})

	Context("in fallback mode", func() {
		var a *adapter.Adapter

		BeforeEach(func() {
			a, _ = newTestAdapter(nil, defaultSettings())
			Expect(a.Start(ctx)).To(Succeed())
		})

		It("searches observed nodes with relevance 0.5", func() {
			Expect(a.ObserveNode(graph.Node{UUID: "n1", Name: "Billing Team"})).To(Succeed())

			result, err := a.SearchNodes(ctx, "billing", adapter.SearchOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nodes).To(HaveLen(1))
			Expect(result.RelevanceScore).To(BeNumerically("==", 0.5))
		})

		It("returns an empty result with relevance 0 on no match", func() {
			result, err := a.SearchNodes(ctx, "anything", adapter.SearchOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nodes).To(BeEmpty())
			Expect(result.RelevanceScore).To(BeZero())
		})

		It("caps fallback results at the limit", func() {
			for i := 0; i < 5; i++ {
				Expect(a.ObserveNode(graph.Node{
					UUID: fmt.Sprintf("n%d", i),
					Name: fmt.Sprintf("server %d", i),
				})).To(Succeed())
			}

			result, err := a.SearchNodes(ctx, "server", adapter.SearchOptions{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nodes).To(HaveLen(2))
		})
	})

	It("returns ErrDisposed after Destroy", func() {
		a, _ := newTestAdapter(nil, defaultSettings())
		Expect(a.Destroy(ctx)).To(Succeed())

		_, err := a.SearchNodes(ctx, "q", adapter.SearchOptions{})
		Expect(err).To(MatchError(adapter.ErrDisposed))
	})
})

var _ = Describe("SearchFacts", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("asks the remote fact search while connected", func() {
		fake := newFakeInvoker()
		fake.respondWith(tools.ToolSearchMemoryFacts,
			`{"facts":["alice leads billing"],"relevance_score":0.91}`)
		a, _ := newTestAdapter(fake, defaultSettings())
		Expect(a.Start(ctx)).To(Succeed())

		result, err := a.SearchFacts(ctx, "leads", adapter.SearchOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Facts).To(ConsistOf("alice leads billing"))
		Expect(result.RelevanceScore).To(BeNumerically("==", 0.91))

		params := fake.callsFor(tools.ToolSearchMemoryFacts)[0].Params
		Expect(params["max_facts"]).To(Equal(10))
	})

	It("renders cached edges in fallback mode", func() {
		a, _ := newTestAdapter(nil, defaultSettings())
		Expect(a.Start(ctx)).To(Succeed())

		Expect(a.ObserveNode(graph.Node{UUID: "n1", Name: "alice"})).To(Succeed())
		Expect(a.ObserveNode(graph.Node{UUID: "n2", Name: "billing"})).To(Succeed())
		Expect(a.ObserveEdge(graph.Edge{
			UUID: "e1", SourceUUID: "n1", TargetUUID: "n2", RelationType: "leads",
		})).To(Succeed())

		result, err := a.SearchFacts(ctx, "leads", adapter.SearchOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Facts).To(ConsistOf("alice leads billing"))
		Expect(result.RelevanceScore).To(BeNumerically("==", 0.5))
	})
})
