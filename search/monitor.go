package search

import (
	"github.com/poiesic/folhabot/core"
	"github.com/poiesic/folhabot/index"
)

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during retrieval.
type Monitor interface {
	Start(query string, filters core.FilterSet)
	AfterFilterPass(survivors []int)
	Fallback()
	AfterScoring(similarities []index.Similarity)
	Finish(results []core.SearchResult, mode core.RetrievalMode)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ core.FilterSet)                      {}
func (n *noopMonitor) AfterFilterPass(_ []int)                               {}
func (n *noopMonitor) Fallback()                                             {}
func (n *noopMonitor) AfterScoring(_ []index.Similarity)                     {}
func (n *noopMonitor) Finish(_ []core.SearchResult, _ core.RetrievalMode)    {}
