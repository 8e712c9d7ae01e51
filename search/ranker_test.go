package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/folhabot/ai/mock"
	"github.com/poiesic/folhabot/core"
	"github.com/poiesic/folhabot/corpus"
	"github.com/poiesic/folhabot/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New([]core.Record{
		{
			EmployeeID:     "E001",
			Name:           "Ana Souza",
			Competency:     "2025-01",
			PaymentDate:    time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
			BaseSalary:     8000,
			DeductionsINSS: 880,
			DeductionsIRRF: 620,
			NetPay:         6500,
		},
		{
			EmployeeID:     "E001",
			Name:           "Ana Souza",
			Competency:     "2025-03",
			PaymentDate:    time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
			BaseSalary:     8000,
			Bonus:          2000,
			DeductionsINSS: 880,
			DeductionsIRRF: 620,
			NetPay:         9000,
		},
		{
			EmployeeID:     "E002",
			Name:           "Bruno Lima",
			Competency:     "2025-03",
			PaymentDate:    time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
			BaseSalary:     6500,
			DeductionsINSS: 715,
			DeductionsIRRF: 410,
			NetPay:         5375,
		},
	})
	require.NoError(t, err)
	return c
}

// testRanker builds a ranker whose chunks embed to orthogonal axis vectors,
// so each test can steer similarity by choosing the query vector.
func testRanker(t *testing.T, opts ...Option) (*Ranker, *mock.MockEmbedder) {
	t.Helper()

	axes := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = axes[i]
		}
		return vectors, nil
	}

	c := testCorpus(t)
	idx, err := index.Build(context.Background(), c, embedder)
	require.NoError(t, err)

	ranker, err := NewRanker(c, idx, opts...)
	require.NoError(t, err)
	return ranker, embedder
}

func queryVector(embedder *mock.MockEmbedder, v []float32) {
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return v, nil
	}
}

func TestNewRankerValidation(t *testing.T) {
	c := testCorpus(t)
	idx, err := index.Build(context.Background(), c, mock.NewMockEmbedder())
	require.NoError(t, err)

	t.Run("requires corpus", func(t *testing.T) {
		_, err := NewRanker(nil, idx)
		assert.ErrorIs(t, err, ErrCorpusRequired)
	})

	t.Run("requires index", func(t *testing.T) {
		_, err := NewRanker(c, nil)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("rejects invalid max hits", func(t *testing.T) {
		_, err := NewRanker(c, idx, WithMaxHits(0))
		assert.ErrorIs(t, err, ErrInvalidMaxHits)
	})

	t.Run("rejects invalid threshold", func(t *testing.T) {
		_, err := NewRanker(c, idx, WithThreshold(1.5))
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})
}

func TestRetrieveSemantic(t *testing.T) {
	ranker, embedder := testRanker(t)
	queryVector(embedder, []float32{0, 1, 0})

	results, mode, err := ranker.Retrieve(context.Background(), "bônus da Ana", core.FilterSet{})
	require.NoError(t, err)
	assert.Equal(t, core.RetrievalSemantic, mode)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Index)
	assert.InDelta(t, 1.0, results[0].Score, 0.0001)
	assert.Equal(t, "Ana Souza", results[0].Record.Name)
}

func TestRetrieveFiltered(t *testing.T) {
	ranker, embedder := testRanker(t)
	queryVector(embedder, []float32{0, 1, 0})

	filters := core.FilterSet{Name: "Ana Souza", Competency: "2025-03"}
	results, mode, err := ranker.Retrieve(context.Background(), "salário líquido da Ana em março", filters)
	require.NoError(t, err)
	assert.Equal(t, core.RetrievalFiltered, mode)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Index)
	assert.Equal(t, 9000.0, results[0].Record.NetPay)
}

func TestRetrieveFiltersAreHardConstraints(t *testing.T) {
	ranker, embedder := testRanker(t)
	// Query most similar to Ana's record, but the filter names Bruno: the
	// high-similarity record must not leak through.
	queryVector(embedder, []float32{0, 1, 0})

	filters := core.FilterSet{Name: "Bruno Lima"}
	results, mode, err := ranker.Retrieve(context.Background(), "salário", filters)
	require.NoError(t, err)
	assert.Equal(t, core.RetrievalNoResults, mode)
	assert.Empty(t, results)
}

func TestRetrieveFallback(t *testing.T) {
	ranker, embedder := testRanker(t)
	queryVector(embedder, []float32{1, 0, 0})

	filters := core.FilterSet{Name: "Carla Dias"}
	results, mode, err := ranker.Retrieve(context.Background(), "salário da Carla", filters)
	require.NoError(t, err)
	assert.Equal(t, core.RetrievalFallback, mode)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Index)
}

func TestRetrieveThresholdAppliesInFallback(t *testing.T) {
	ranker, embedder := testRanker(t, WithThreshold(0.9))
	queryVector(embedder, []float32{0.6, 0.8, 0})

	filters := core.FilterSet{Name: "Carla Dias"}
	results, mode, err := ranker.Retrieve(context.Background(), "salário da Carla", filters)
	require.NoError(t, err)
	assert.Equal(t, core.RetrievalNoResults, mode)
	assert.Empty(t, results)
}

func TestRetrieveTieBreakIsCorpusOrder(t *testing.T) {
	ranker, embedder := testRanker(t, WithThreshold(0.5))
	queryVector(embedder, []float32{1, 1, 0})

	results, mode, err := ranker.Retrieve(context.Background(), "pagamentos", core.FilterSet{})
	require.NoError(t, err)
	assert.Equal(t, core.RetrievalSemantic, mode)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 1, results[1].Index)
	assert.InDelta(t, results[0].Score, results[1].Score, 0.0001)
}

func TestRetrieveMaxHits(t *testing.T) {
	ranker, embedder := testRanker(t, WithMaxHits(2), WithThreshold(0.5))
	queryVector(embedder, []float32{1, 1, 1})

	results, _, err := ranker.Retrieve(context.Background(), "todos os pagamentos", core.FilterSet{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 1, results[1].Index)
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	c, err := corpus.New(nil)
	require.NoError(t, err)
	idx, err := index.Build(context.Background(), c, mock.NewMockEmbedder())
	require.NoError(t, err)
	ranker, err := NewRanker(c, idx)
	require.NoError(t, err)

	results, mode, err := ranker.Retrieve(context.Background(), "qualquer consulta", core.FilterSet{})
	require.NoError(t, err)
	assert.Equal(t, core.RetrievalNoResults, mode)
	assert.Empty(t, results)
}

func TestRetrieveEmbedderFailure(t *testing.T) {
	ranker, embedder := testRanker(t)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	_, _, err := ranker.Retrieve(context.Background(), "salário", core.FilterSet{})
	assert.Error(t, err)
}

type recordingMonitor struct {
	started    bool
	survivors  []int
	fellBack   bool
	scored     int
	finishMode core.RetrievalMode
}

func (m *recordingMonitor) Start(_ string, _ core.FilterSet) { m.started = true }
func (m *recordingMonitor) AfterFilterPass(survivors []int)  { m.survivors = survivors }
func (m *recordingMonitor) Fallback()                        { m.fellBack = true }
func (m *recordingMonitor) AfterScoring(similarities []index.Similarity) {
	m.scored = len(similarities)
}
func (m *recordingMonitor) Finish(_ []core.SearchResult, mode core.RetrievalMode) {
	m.finishMode = mode
}

func TestRetrieveWithMonitor(t *testing.T) {
	ranker, embedder := testRanker(t)
	queryVector(embedder, []float32{1, 0, 0})

	monitor := &recordingMonitor{}
	filters := core.FilterSet{Name: "Carla Dias"}
	_, mode, err := ranker.RetrieveWithMonitor(context.Background(), "salário da Carla", filters, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Empty(t, monitor.survivors)
	assert.True(t, monitor.fellBack)
	assert.Equal(t, 3, monitor.scored)
	assert.Equal(t, mode, monitor.finishMode)
}
