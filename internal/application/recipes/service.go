// Package recipes provides the recipe generation pipeline: it builds a
// prompt from current inventory, calls the completion service, and converts
// and sanitizes the result for display.
package recipes

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aislehq/pantry/internal/infrastructure/monitoring"
	"github.com/aislehq/pantry/internal/ports/inbound"
	"github.com/aislehq/pantry/internal/ports/outbound"
	"github.com/aislehq/pantry/pkg/errors"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// promptFraming is the fixed system framing embedded in every prompt. The
// service is asked either to propose a recipe from the pantry ingredients or
// to suggest fixes when the ingredients are not valid.
const promptFraming = "You are AIsle, an AI assistant for generating recipes given a list of items in the pantry. " +
	"If the ingredients given are valid generate a recipe, otherwise suggest fixes for the ingredients. " +
	"Generate a recipe using the following ingredients: "

// Service implements the recipe suggestion use case.
//
// One run per trigger: Idle -> Requesting -> {Succeeded, Failed} -> Idle on
// the next invocation. Overlapping triggers are not queued or serialized;
// the last run to resolve wins.
type Service struct {
	completions outbound.CompletionService
	sanitizer   *bluemonday.Policy
	metrics     *monitoring.Metrics
	logger      *zap.Logger

	mu    sync.Mutex
	phase inbound.GenerationPhase
}

// NewService creates a new recipe generation service
func NewService(
	completions outbound.CompletionService,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		completions: completions,
		sanitizer:   bluemonday.UGCPolicy(),
		metrics:     metrics,
		logger:      logger.Named("recipe-service"),
		phase:       inbound.PhaseIdle,
	}
}

// GenerateRecipe runs the pipeline once and returns a sanitized HTML
// fragment. An empty ingredient list is still sent to the completion
// service. On transport failure or a malformed response the run reports a
// GenerationError and no partial content is returned; no retry is attempted.
func (s *Service) GenerateRecipe(ctx context.Context, ingredientNames []string) (string, error) {
	s.setPhase(inbound.PhaseRequesting)
	started := time.Now()

	prompt := s.buildPrompt(ingredientNames)
	s.logger.Info("Recipe generation requested",
		zap.Int("ingredients", len(ingredientNames)),
	)

	raw, err := s.completions.Complete(ctx, prompt)
	if err != nil {
		s.setPhase(inbound.PhaseFailed)
		s.metrics.GenerationFailed()
		s.logger.Error("Completion call failed", zap.Error(err))
		return "", errors.NewGenerationError("completion service call failed", err)
	}

	rendered := s.renderMarkdown(raw)
	safe := s.sanitizer.Sanitize(rendered)

	s.setPhase(inbound.PhaseSucceeded)
	s.metrics.GenerationSucceeded(time.Since(started))
	s.logger.Info("Recipe generated",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("html_bytes", len(safe)),
	)

	return safe, nil
}

// Phase reports the pipeline's current run state.
func (s *Service) Phase() inbound.GenerationPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Service) setPhase(phase inbound.GenerationPhase) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

// buildPrompt embeds the comma-joined ingredient list into the fixed framing.
func (s *Service) buildPrompt(ingredientNames []string) string {
	return promptFraming + strings.Join(ingredientNames, ", ")
}

// renderMarkdown converts the untrusted model output to HTML. Parser
// instances are single-use, so one is built per run.
func (s *Service) renderMarkdown(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(text), p, renderer))
}
