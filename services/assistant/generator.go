// Package assistant answers legal questions: it embeds the question, pulls
// reference passages, assembles a prompt and asks the generative model,
// falling back to a fixed reply when the model cannot answer.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"lawyerconnect/metrics"
	"lawyerconnect/services/embedding"
	"lawyerconnect/services/generation"
	"lawyerconnect/services/retrieval"

	"go.uber.org/zap"
)

// Stage is a step of answering one question.
type Stage string

const (
	StageEmbedding  Stage = "embedding"
	StageRetrieving Stage = "retrieving"
	StageAssembling Stage = "assembling"
	StageGenerating Stage = "generating"
	StageDone       Stage = "done"
	StageDegraded   Stage = "degraded"
)

const (
	// TopK is the number of passages requested per question.
	TopK = 3
	// HistoryWindow is how many prior turns are carried into the prompt.
	HistoryWindow = 3
)

// FallbackMessage is returned whenever the model cannot produce an answer.
const FallbackMessage = "I'm sorry, the legal assistant is temporarily unavailable and could not answer your question right now. " +
	"Please try again in a moment, or consult a qualified lawyer if you need help immediately."

var errEmptyCompletion = errors.New("model returned an empty completion")

// Config bounds the external calls.
type Config struct {
	RetrievalTimeout  time.Duration
	GenerationTimeout time.Duration
}

// Reply is the outcome of one question. Text is never empty.
type Reply struct {
	Text            string
	Stage           Stage
	Intent          MatterKind
	Passages        int
	RetrievalFailed bool
	Degraded        bool
}

// Generator runs the answer pipeline. It holds no per-question state and is
// safe for concurrent use.
type Generator struct {
	embedder embedding.Embedder
	index    retrieval.Index
	model    generation.Model
	cfg      Config
	logger   *zap.Logger
}

// NewGenerator wires the pipeline. A nil index answers without reference
// passages; a nil model always degrades.
func NewGenerator(embedder embedding.Embedder, index retrieval.Index, model generation.Model, cfg Config, logger *zap.Logger) *Generator {
	if cfg.RetrievalTimeout <= 0 {
		cfg.RetrievalTimeout = 5 * time.Second
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = 30 * time.Second
	}
	if embedder == nil {
		embedder = embedding.NewHashEmbedder()
	}
	return &Generator{embedder: embedder, index: index, model: model, cfg: cfg, logger: logger}
}

// Respond answers question given the prior turns of the conversation,
// oldest first, each formatted "role: content". It never returns an error:
// retrieval problems shrink the context to nothing, and generation problems
// produce FallbackMessage.
func (g *Generator) Respond(ctx context.Context, question string, history []string) Reply {
	reply := Reply{Intent: DetectMatter(question)}

	start := time.Now()
	vector := g.embedder.Embed(question)
	observe(StageEmbedding, start)

	start = time.Now()
	passages, err := g.retrieve(ctx, vector)
	observe(StageRetrieving, start)
	if err != nil {
		reply.RetrievalFailed = true
		metrics.RetrievalFailures.Inc()
		g.logger.Warn("retrieval unavailable, answering without reference passages", zap.Error(err))
	}
	reply.Passages = len(passages)

	start = time.Now()
	prompt := BuildPrompt(question, history, passages, reply.Intent)
	observe(StageAssembling, start)

	start = time.Now()
	text, err := g.generate(ctx, prompt)
	observe(StageGenerating, start)
	if err != nil {
		g.logger.Warn("generation unavailable, returning fallback reply", zap.Error(err))
		metrics.PipelineOutcomes.WithLabelValues(string(StageDegraded)).Inc()
		reply.Text = FallbackMessage
		reply.Stage = StageDegraded
		reply.Degraded = true
		return reply
	}

	metrics.PipelineOutcomes.WithLabelValues(string(StageDone)).Inc()
	reply.Text = text
	reply.Stage = StageDone
	return reply
}

func (g *Generator) retrieve(ctx context.Context, vector []float64) ([]retrieval.Passage, error) {
	if g.index == nil {
		return nil, nil
	}
	return withCeiling(ctx, g.cfg.RetrievalTimeout, func(ctx context.Context) ([]retrieval.Passage, error) {
		return g.index.Search(ctx, vector, TopK)
	})
}

// generate runs detached from the caller's cancellation: once issued, the
// model call runs until it completes or hits the generation ceiling.
func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	if g.model == nil {
		return "", generation.ErrNotConfigured
	}
	text, err := withCeiling(context.WithoutCancel(ctx), g.cfg.GenerationTimeout, func(ctx context.Context) (string, error) {
		return g.model.Generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

func observe(stage Stage, start time.Time) {
	metrics.PipelineStageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
}
