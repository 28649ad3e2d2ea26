package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hivemesh/strand/pkg/graph"
)

var _ = Describe("Search", func() {
	var c *Cache

	BeforeEach(func() {
		c = New()
	})

	It("matches node names case-insensitively", func() {
		c.PutNode(graph.Node{UUID: "n1", Name: "Billing Team"})

		matches := c.Search("billing", 0)
		Expect(matches).To(HaveLen(1))
		Expect(matches[0].UUID).To(Equal("n1"))
	})

	It("matches observation text", func() {
		c.PutNode(graph.Node{
			UUID:         "n1",
			Name:         "alice",
			Observations: []string{"Leads the Platform group"},
		})

		matches := c.Search("platform", 0)
		Expect(matches).To(HaveLen(1))
	})

	It("includes a node once even when name and observations both match", func() {
		c.PutNode(graph.Node{
			UUID:         "n1",
			Name:         "rollout plan",
			Observations: []string{"rollout starts Monday", "rollout owner is ops"},
		})

		Expect(c.Search("rollout", 0)).To(HaveLen(1))
	})

	It("returns nothing for a query with no matches", func() {
		c.PutNode(graph.Node{UUID: "n1", Name: "alice"})

		Expect(c.Search("zebra", 0)).To(BeEmpty())
	})

	It("caps results at the limit", func() {
		c.PutNode(graph.Node{UUID: "n1", Name: "server one"})
		c.PutNode(graph.Node{UUID: "n2", Name: "server two"})
		c.PutNode(graph.Node{UUID: "n3", Name: "server three"})

		Expect(c.Search("server", 2)).To(HaveLen(2))
	})

	It("treats a non-positive limit as uncapped", func() {
		c.PutNode(graph.Node{UUID: "n1", Name: "server one"})
		c.PutNode(graph.Node{UUID: "n2", Name: "server two"})

		Expect(c.Search("server", 0)).To(HaveLen(2))
		Expect(c.Search("server", -1)).To(HaveLen(2))
	})

	It("matches everything on the empty query", func() {
		c.PutNode(graph.Node{UUID: "n1", Name: "alice"})
		c.PutNode(graph.Node{UUID: "n2", Name: "bob"})

		Expect(c.Search("", 0)).To(HaveLen(2))
	})
})

var _ = Describe("Facts", func() {
	var c *Cache

	BeforeEach(func() {
		c = New()
	})

	It("renders edges with cached node names", func() {
		c.PutNode(graph.Node{UUID: "n1", Name: "alice"})
		c.PutNode(graph.Node{UUID: "n2", Name: "billing"})
		c.PutEdge(graph.Edge{UUID: "e1", SourceUUID: "n1", TargetUUID: "n2", RelationType: "leads"})

		facts := c.Facts("leads", 0)
		Expect(facts).To(ConsistOf("alice leads billing"))
	})

	It("falls back to uuids for uncached endpoints", func() {
		c.PutEdge(graph.Edge{UUID: "e1", SourceUUID: "n1", TargetUUID: "n2", RelationType: "knows"})

		facts := c.Facts("knows", 0)
		Expect(facts).To(ConsistOf("n1 knows n2"))
	})

	It("matches the rendered statement case-insensitively", func() {
		c.PutNode(graph.Node{UUID: "n1", Name: "Alice"})
		c.PutEdge(graph.Edge{UUID: "e1", SourceUUID: "n1", TargetUUID: "n2", RelationType: "owns"})

		Expect(c.Facts("ALICE", 0)).To(HaveLen(1))
		Expect(c.Facts("nobody", 0)).To(BeEmpty())
	})

	It("caps results at the limit", func() {
		c.PutEdge(graph.Edge{UUID: "e1", SourceUUID: "a", TargetUUID: "b", RelationType: "knows"})
		c.PutEdge(graph.Edge{UUID: "e2", SourceUUID: "c", TargetUUID: "d", RelationType: "knows"})

		Expect(c.Facts("knows", 1)).To(HaveLen(1))
	})
})
