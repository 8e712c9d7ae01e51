// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package folhabot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/poiesic/folhabot/ai"
	"github.com/poiesic/folhabot/conversation"
	"github.com/poiesic/folhabot/core"
	"github.com/poiesic/folhabot/corpus"
	"github.com/poiesic/folhabot/extract"
	"github.com/poiesic/folhabot/guard"
	"github.com/poiesic/folhabot/index"
	"github.com/poiesic/folhabot/intent"
	"github.com/poiesic/folhabot/search"
)

// emptyQueryResponse answers queries that the sanitizer reduced to nothing.
const emptyQueryResponse = "Desculpe, não consegui entender a sua pergunta. Pode reformular?"

// Engine wires the full query pipeline over one payroll corpus: sanitizer,
// intent classifier, filter extractor, embedding index, ranker, response
// generator and conversation history.
type Engine struct {
	corpus     *corpus.Corpus
	index      *index.Index
	ranker     *search.Ranker
	sanitizer  *guard.Sanitizer
	classifier *intent.Classifier
	extractor  *extract.Extractor
	provider   ai.Provider
	context    *conversation.Context
	options    *engineOptions
	logger     *slog.Logger
}

// Response is the outcome of one processed query.
type Response struct {
	Text       string
	Intent     core.Intent
	Confidence float64
	Mode       core.RetrievalMode
	Results    []core.SearchResult
	Filters    core.FilterSet
	Suspicious bool
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	maxHits         int
	threshold       float32
	maxTurns        int
	confidenceFloor float64
	logger          *slog.Logger
}

// WithMaxHits sets the maximum number of records cited per answer.
// Default is search.DefaultMaxHits.
func WithMaxHits(maxHits int) EngineOption {
	return func(o *engineOptions) {
		o.maxHits = maxHits
	}
}

// WithThreshold sets the minimum similarity for a record to be cited.
// Default is search.DefaultThreshold.
func WithThreshold(threshold float32) EngineOption {
	return func(o *engineOptions) {
		o.threshold = threshold
	}
}

// WithMaxTurns sets the conversation history bound.
// Default is conversation.DefaultMaxTurns.
func WithMaxTurns(maxTurns int) EngineOption {
	return func(o *engineOptions) {
		o.maxTurns = maxTurns
	}
}

// WithConfidenceFloor sets the intent confidence floor.
// Default is intent.DefaultConfidenceFloor.
func WithConfidenceFloor(floor float64) EngineOption {
	return func(o *engineOptions) {
		o.confidenceFloor = floor
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// NewEngine builds the pipeline for a corpus. It embeds every record up
// front; the call blocks until the index is fully built and fails if any
// embedding fails.
func NewEngine(ctx context.Context, c *corpus.Corpus, provider ai.Provider, opts ...EngineOption) (*Engine, error) {
	if c == nil {
		return nil, ErrCorpusRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	// Apply options
	options := &engineOptions{
		maxHits:         search.DefaultMaxHits,
		threshold:       search.DefaultThreshold,
		maxTurns:        conversation.DefaultMaxTurns,
		confidenceFloor: intent.DefaultConfidenceFloor,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	sanitizer := guard.NewSanitizer(guard.WithLogger(logger))

	classifier, err := intent.NewClassifier(
		intent.WithConfidenceFloor(options.confidenceFloor),
		intent.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	extractor, err := extract.NewExtractor(c.Names(), c.MostRecentYear(), extract.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	idx, err := index.Build(ctx, c, provider.Embedder(), index.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	ranker, err := search.NewRanker(c, idx,
		search.WithMaxHits(options.maxHits),
		search.WithThreshold(options.threshold),
		search.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	conv, err := conversation.NewContext(
		conversation.WithMaxTurns(options.maxTurns),
		conversation.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Engine{
		corpus:     c,
		index:      idx,
		ranker:     ranker,
		sanitizer:  sanitizer,
		classifier: classifier,
		extractor:  extractor,
		provider:   provider,
		context:    conv,
		options:    options,
		logger:     logger.With("component", "engine"),
	}, nil
}

// Close releases the AI provider.
func (e *Engine) Close() error {
	return e.provider.Close()
}

// Corpus returns the corpus currently served.
func (e *Engine) Corpus() *corpus.Corpus {
	return e.corpus
}

// Index returns the embedding index currently served.
func (e *Engine) Index() *index.Index {
	return e.index
}

// Conversation returns the session history.
func (e *Engine) Conversation() *conversation.Context {
	return e.context
}

// ProcessQuery runs one query through the pipeline and records the
// completed turn. Degraded retrieval never fails the query; only
// infrastructure errors (embedding, generation) are returned.
func (e *Engine) ProcessQuery(ctx context.Context, query string) (*Response, error) {
	clean, suspicious := e.sanitizer.Sanitize(query)
	if clean == "" {
		return &Response{
			Text:       emptyQueryResponse,
			Intent:     core.IntentGeneral,
			Suspicious: suspicious,
		}, nil
	}

	detected, confidence := e.classifier.Classify(clean)
	response := &Response{
		Intent:     detected,
		Confidence: confidence,
		Suspicious: suspicious,
	}

	var err error
	switch detected {
	case core.IntentPayroll:
		err = e.answerPayroll(ctx, clean, response)
	case core.IntentStatistics:
		response.Text = e.corpus.Statistics().Format()
	default:
		response.Text, err = e.generate(ctx, clean, nil)
	}
	if err != nil {
		e.logger.Error("error processing query", "intent", detected, "err", err)
		return nil, err
	}

	turn := core.Turn{
		UserText:     clean,
		ResponseText: response.Text,
		Metadata: core.TurnMetadata{
			Intent:     response.Intent,
			Confidence: response.Confidence,
			Mode:       response.Mode,
			Sources:    sources(response.Results),
			Filters:    response.Filters,
			Suspicious: response.Suspicious,
		},
	}
	if err := e.context.Append(turn); err != nil {
		e.logger.Error("error recording turn", "err", err)
	}

	return response, nil
}

// answerPayroll retrieves the relevant records and generates a grounded
// answer.
func (e *Engine) answerPayroll(ctx context.Context, query string, response *Response) error {
	response.Filters = e.extractor.Extract(query)

	results, mode, err := e.ranker.Retrieve(ctx, query, response.Filters)
	if err != nil {
		return err
	}
	response.Mode = mode
	response.Results = results

	evidence := make([]ai.Evidence, len(results))
	for i, result := range results {
		evidence[i] = ai.Evidence{
			Text:   corpus.ChunkText(result.Record),
			Source: result.Index,
			Score:  result.Score,
		}
	}

	response.Text, err = e.generate(ctx, query, evidence)
	return err
}

// generate calls the response generator with the conversation history and
// the current query.
func (e *Engine) generate(ctx context.Context, query string, evidence []ai.Evidence) (string, error) {
	history := e.context.History()
	messages := make([]ai.Message, 0, 2*len(history)+1)
	for _, turn := range history {
		messages = append(messages,
			ai.Message{Role: ai.RoleUser, Content: turn.UserText},
			ai.Message{Role: ai.RoleAssistant, Content: turn.ResponseText},
		)
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: query})

	return e.provider.Generator().GenerateResponse(ctx, messages, evidence)
}

// ApplyAdjustment parses a salary adjustment command, projects the new
// year into the corpus and rebuilds the index over the projected corpus.
// Returns a confirmation message describing the projection.
func (e *Engine) ApplyAdjustment(ctx context.Context, command string) (string, error) {
	year, factor, err := corpus.ParseAdjustmentCommand(command)
	if err != nil {
		return "", err
	}

	adjusted, err := e.corpus.WithAdjustedYear(year, factor)
	if err != nil {
		return "", err
	}
	projected := adjusted.Len() - e.corpus.Len()

	idx, err := e.index.Rebuild(ctx, adjusted, index.WithLogger(e.options.logger))
	if err != nil {
		return "", err
	}

	extractor, err := extract.NewExtractor(adjusted.Names(), adjusted.MostRecentYear(), extract.WithLogger(e.options.logger))
	if err != nil {
		return "", err
	}

	ranker, err := search.NewRanker(adjusted, idx,
		search.WithMaxHits(e.options.maxHits),
		search.WithThreshold(e.options.threshold),
		search.WithLogger(e.options.logger),
	)
	if err != nil {
		return "", err
	}

	// Swap only after every piece rebuilt cleanly.
	e.corpus = adjusted
	e.index = idx
	e.extractor = extractor
	e.ranker = ranker

	e.logger.Info("salary adjustment applied",
		"year", year,
		"factor", factor,
		"projected", projected)
	return confirmAdjustment(year, factor, projected), nil
}

func confirmAdjustment(year int, factor float64, projected int) string {
	percent := math.Round((factor-1)*100*100) / 100
	return fmt.Sprintf(
		"Reajuste de %s%% aplicado: %d registros projetados para %d com base em %d.",
		strconv.FormatFloat(percent, 'f', -1, 64), projected, year, year-1)
}

func sources(results []core.SearchResult) []int {
	if len(results) == 0 {
		return nil
	}
	indices := make([]int, len(results))
	for i, result := range results {
		indices[i] = result.Index
	}
	return indices
}
