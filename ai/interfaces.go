package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use and should return
// vectors that are meaningfully comparable via cosine similarity.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Role identifies the author of a conversation message handed to a Generator.
type Role string

const (
	// RoleUser is the human asking questions.
	RoleUser Role = "user"
	// RoleAssistant is the generated answer side of the conversation.
	RoleAssistant Role = "assistant"
)

// Message is one conversation message in generator input order.
type Message struct {
	Role    Role
	Content string
}

// Evidence is one retrieved chunk handed to the generator as grounding
// context. Source is the corpus row index of the originating record, used
// for citation.
type Evidence struct {
	Text   string
	Source int
	Score  float32
}

// Generator turns a conversation and retrieved evidence into a prose answer.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateResponse produces an answer to the last user message, grounded
	// in the supplied evidence. Evidence may be empty for general chat.
	// Returns an error if generation fails.
	GenerateResponse(ctx context.Context, messages []Message, evidence []Evidence) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the response generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
