package index

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/folhabot/ai"
	"github.com/poiesic/folhabot/core"
	"github.com/poiesic/folhabot/corpus"
)

// Chunk is the unit of semantic search: the canonical text rendering of one
// payroll record plus the corpus index of that record.
type Chunk struct {
	ID     core.ID
	Text   string
	Source int
}

// Similarity is the cosine similarity of the query against one chunk,
// in [-1, 1].
type Similarity struct {
	Chunk int // chunk index == corpus record index
	Score float32
}

// Index caches one embedding vector per chunk for the process lifetime.
// It is immutable after construction; Build a new index to rebuild. A
// built index is safe for concurrent read access from multiple sessions.
type Index struct {
	chunks   []Chunk
	vectors  [][]float32
	embedder ai.Embedder
	logger   *slog.Logger
}

// options holds Build configuration.
type options struct {
	poolSize  int
	batchSize int
	logger    *slog.Logger
}

// Option configures Build.
type Option func(*options) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *options) error {
		if size < 1 {
			size = 1
		}
		o.poolSize = size
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per batch request.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(o *options) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		o.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// Build constructs the index for a corpus: one chunk and one normalized
// vector per record. It blocks until every vector is computed and fails as
// a whole if any batch fails; a partially built index is never returned.
// This is the initialization phase that must complete before queries are
// served.
func Build(ctx context.Context, c *corpus.Corpus, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if c == nil {
		return nil, ErrCorpusRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	o := &options{
		poolSize:  max(runtime.NumCPU()/2, 1),
		batchSize: 32,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	logger := o.logger.With("component", "embedding-index")

	texts := c.ChunkTexts()
	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{
			ID:     core.IDFromContent(text),
			Text:   text,
			Source: i,
		}
	}

	vectors := make([][]float32, len(chunks))
	if len(chunks) > 0 {
		pool, err := ants.NewPool(o.poolSize)
		if err != nil {
			return nil, err
		}
		defer pool.Release()

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			buildErr error
		)

		for start := 0; start < len(texts); start += o.batchSize {
			end := min(start+o.batchSize, len(texts))
			offset, batch := start, texts[start:end]

			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()

				embedded, err := embedder.EmbedTexts(ctx, batch)
				if err == nil && len(embedded) != len(batch) {
					err = fmt.Errorf("%w: got %d vectors for %d chunks", ErrBuildFailed, len(embedded), len(batch))
				}
				if err != nil {
					mu.Lock()
					if buildErr == nil {
						buildErr = err
					}
					mu.Unlock()
					return
				}

				for i, vector := range embedded {
					vectors[offset+i] = Normalize(vector)
				}
			})
			if submitErr != nil {
				wg.Done()
				mu.Lock()
				if buildErr == nil {
					buildErr = submitErr
				}
				mu.Unlock()
				break
			}
		}

		wg.Wait()

		if buildErr != nil {
			logger.Error("index build failed", "chunks", len(chunks), "err", buildErr)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %w", ErrBuildFailed, buildErr)
		}

		for i, vector := range vectors {
			if len(vector) == 0 {
				return nil, fmt.Errorf("%w: empty vector for chunk %d", ErrBuildFailed, i)
			}
		}
	}

	logger.Info("embedding index built", "chunks", len(chunks))
	return &Index{
		chunks:   chunks,
		vectors:  vectors,
		embedder: embedder,
		logger:   logger,
	}, nil
}

// Rebuild embeds a corpus from scratch with the same embedder and returns
// the fresh index; the receiver is left untouched and stays serveable.
func (x *Index) Rebuild(ctx context.Context, c *corpus.Corpus, opts ...Option) (*Index, error) {
	return Build(ctx, c, x.embedder, opts...)
}

// Len returns the number of indexed chunks.
func (x *Index) Len() int {
	return len(x.chunks)
}

// Chunk returns the chunk at the given index.
func (x *Index) Chunk(i int) Chunk {
	return x.chunks[i]
}

// Score embeds the query and returns exactly one cosine similarity per
// chunk, in chunk order. An empty index yields an empty slice, not an error.
func (x *Index) Score(ctx context.Context, query string) ([]Similarity, error) {
	if len(x.chunks) == 0 {
		return []Similarity{}, nil
	}

	embedded, err := x.embedder.EmbedText(ctx, query)
	if err != nil {
		x.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}
	queryVector := Normalize(embedded)

	similarities := make([]Similarity, len(x.chunks))
	for i := range x.chunks {
		similarities[i] = Similarity{
			Chunk: i,
			Score: Cosine(queryVector, x.vectors[i]),
		}
	}
	return similarities, nil
}

// Normalize scales a vector to unit length. A zero or empty vector is
// returned as an equally sized zero vector.
func Normalize(v []float32) []float32 {
	result := make([]float32, len(v))

	var sumSquares float32
	for _, value := range v {
		sumSquares += value * value
	}
	if sumSquares == 0 {
		return result
	}

	magnitude := float32(math.Sqrt(float64(sumSquares)))
	for i, value := range v {
		result[i] = value / magnitude
	}
	return result
}

// Cosine returns the cosine similarity of two unit vectors (their dot
// product). Vectors of different lengths are incomparable and score 0.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	// Guard against rounding pushing the dot product out of [-1, 1].
	if dot > 1 {
		return 1
	}
	if dot < -1 {
		return -1
	}
	return dot
}
