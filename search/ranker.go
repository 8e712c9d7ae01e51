package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/folhabot/core"
	"github.com/poiesic/folhabot/corpus"
	"github.com/poiesic/folhabot/index"
)

const (
	// DefaultMaxHits is the default result cap.
	DefaultMaxHits = 3

	// DefaultThreshold is the default minimum similarity a result must
	// reach to be returned.
	DefaultThreshold float32 = 0.3
)

// Ranker combines structured filter matching with embedding similarity to
// select the payroll records most relevant to a query.
type Ranker struct {
	corpus    *corpus.Corpus
	index     *index.Index
	maxHits   int
	threshold float32
	logger    *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithMaxHits sets the maximum number of results returned.
// Default is DefaultMaxHits.
func WithMaxHits(maxHits int) Option {
	return func(r *Ranker) error {
		if maxHits < 1 {
			return ErrInvalidMaxHits
		}
		r.maxHits = maxHits
		return nil
	}
}

// WithThreshold sets the minimum similarity for a result to be returned.
// Default is DefaultThreshold.
func WithThreshold(threshold float32) Option {
	return func(r *Ranker) error {
		if threshold < -1 || threshold > 1 {
			return ErrInvalidThreshold
		}
		r.threshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a new ranker over a corpus and its embedding index.
func NewRanker(c *corpus.Corpus, idx *index.Index, opts ...Option) (*Ranker, error) {
	if c == nil {
		return nil, ErrCorpusRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	r := &Ranker{
		corpus:    c,
		index:     idx,
		maxHits:   DefaultMaxHits,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "ranker")

	return r, nil
}

// Retrieve returns the records most relevant to the query, most similar
// first, together with the mode that produced them.
func (r *Ranker) Retrieve(ctx context.Context, query string, filters core.FilterSet) ([]core.SearchResult, core.RetrievalMode, error) {
	return r.RetrieveWithMonitor(ctx, query, filters, nil)
}

// RetrieveWithMonitor retrieves with monitoring. The monitor receives
// callbacks at each stage of the pipeline.
//
// Filters are hard constraints: a record mismatching any populated filter
// is excluded before similarity is consulted. When filters exclude every
// record the ranker falls back to ranking the whole corpus, so a query
// that named an unknown employee still gets an answer grounded in the
// closest records. The similarity threshold applies in every mode.
func (r *Ranker) RetrieveWithMonitor(ctx context.Context, query string, filters core.FilterSet, monitor Monitor) ([]core.SearchResult, core.RetrievalMode, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query, filters)

	// 1. Filter pass
	mode := core.RetrievalSemantic
	survivors := make([]int, 0, r.corpus.Len())
	if filters.HasConstraints() {
		mode = core.RetrievalFiltered
		for i := 0; i < r.corpus.Len(); i++ {
			if filters.Matches(r.corpus.Record(i)) {
				survivors = append(survivors, i)
			}
		}
		monitor.AfterFilterPass(survivors)

		if len(survivors) == 0 {
			mode = core.RetrievalFallback
			monitor.Fallback()
		}
	}
	if len(survivors) == 0 {
		for i := 0; i < r.corpus.Len(); i++ {
			survivors = append(survivors, i)
		}
	}

	// 2. Embedding similarity over the survivors
	similarities, err := r.index.Score(ctx, query)
	if err != nil {
		r.logger.Error("error scoring query against index", "err", err)
		return nil, core.RetrievalNoResults, err
	}
	monitor.AfterScoring(similarities)

	results := make([]core.SearchResult, 0, len(survivors))
	for _, i := range survivors {
		if similarities[i].Score < r.threshold {
			continue
		}
		results = append(results, core.SearchResult{
			Record: r.corpus.Record(i),
			Index:  i,
			Score:  similarities[i].Score,
		})
	}

	// 3. Rank: highest similarity first, corpus order on ties
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > r.maxHits {
		results = results[:r.maxHits]
	}

	if len(results) == 0 {
		mode = core.RetrievalNoResults
	}

	r.logger.Debug("retrieval complete", "mode", mode, "hits", len(results))
	monitor.Finish(results, mode)
	return results, mode, nil
}
