// Package chat implements the request-handling pipeline behind POST /api/chat:
// rate limiting, input validation, conditional search augmentation, prompt
// assembly, and completion, with a closed error taxonomy.
package chat

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/axtarget/axtarchat/internal/prompt"
	"github.com/axtarget/axtarchat/internal/provider"
	"github.com/axtarget/axtarchat/internal/search"
	"github.com/axtarget/axtarchat/internal/stats"
)

// maxMessageLength is the validation cap on inbound messages, in runes.
const maxMessageLength = 1000

// historyDepth is the maximum number of conversation turns accepted from the
// client. The assembler applies its own tighter bound on top.
const historyDepth = 10

// Limiter is the subset of the rate limiter the pipeline needs.
type Limiter interface {
	Allow(identity string) bool
}

// Request is one inbound chat request after HTTP decoding.
type Request struct {
	// Identity keys rate-limit state (forwarded-for header, connection
	// address, or a fixed placeholder).
	Identity string

	// Message is the user's current message, unvalidated.
	Message string

	// History is the client-supplied conversation so far, oldest first.
	History []prompt.Turn
}

// Result is a successful completion.
type Result struct {
	Response string
	Tokens   int
}

// Options bundles the pipeline's collaborators. Provider may be nil when the
// completion module is absent; Searcher, Recorder and Detector are optional.
type Options struct {
	Provider provider.Provider
	Limiter  Limiter
	Detector search.IntentDetector
	Searcher search.Searcher
	Recorder stats.Recorder
	Logger   *slog.Logger
}

// Pipeline orchestrates one request end to end. It is stateless per request;
// the limiter holds the only cross-request state.
type Pipeline struct {
	provider provider.Provider
	limiter  Limiter
	detector search.IntentDetector
	searcher search.Searcher
	recorder stats.Recorder
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewPipeline creates a pipeline from the given collaborators.
func NewPipeline(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		provider: opts.Provider,
		limiter:  opts.Limiter,
		detector: opts.Detector,
		searcher: opts.Searcher,
		recorder: opts.Recorder,
		logger:   logger,
		tracer:   otel.Tracer("axtarchat/chat"),
	}
}

// Handle runs one request through the pipeline. Exactly one of Result or a
// *Error is produced; panics in any stage are caught here and mapped to the
// upstream failure, so no failure crosses this boundary unhandled.
func (p *Pipeline) Handle(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "chat.handle")

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic in chat pipeline", "panic", r)
			res, err = Result{}, errUpstream
		}

		outcome := Outcome(err)
		span.SetAttributes(attribute.String("chat.outcome", outcome))
		if err != nil {
			span.SetStatus(codes.Error, outcome)
		}
		span.End()

		p.record(ctx, req.Identity, outcome, time.Since(start), res.Tokens)
	}()

	// Pre-flight: a configuration defect must not consume the client's
	// rate-limit quota, so this runs before the limiter.
	if err := p.checkProvider(); err != nil {
		return Result{}, err
	}

	if !p.limiter.Allow(req.Identity) {
		return Result{}, errRateLimited
	}

	if req.Message == "" || utf8.RuneCountInString(req.Message) > maxMessageLength {
		return Result{}, errInvalidInput
	}

	history := req.History
	if len(history) > historyDepth {
		history = history[len(history)-historyDepth:]
	}

	searchText := p.augment(ctx, req.Message)

	assembled := prompt.Assemble(req.Message, history, searchText)

	resp, cerr := p.complete(ctx, assembled)
	if cerr != nil {
		p.logger.Error("completion failed", "error", cerr)
		return Result{}, errUpstream
	}

	return Result{Response: resp.Content, Tokens: resp.Usage.TotalTokens}, nil
}

// checkProvider reports a configuration failure when the completion backend
// is missing or knows it cannot serve requests.
func (p *Pipeline) checkProvider() error {
	if p.provider == nil {
		return errMisconfigured
	}
	if rc, ok := p.provider.(provider.ReadyChecker); ok {
		if rerr := rc.Ready(); rerr != nil {
			p.logger.Error("completion provider not ready", "error", rerr)
			return errMisconfigured
		}
	}
	return nil
}

// augment runs the keyword trigger check and, when it fires, the search
// lookup. Lookup failures degrade to an empty snippet; they never fail the
// request.
func (p *Pipeline) augment(ctx context.Context, message string) string {
	if p.detector == nil || p.searcher == nil {
		return ""
	}
	if !p.detector.NeedsSearch(message) {
		return ""
	}

	ctx, span := p.tracer.Start(ctx, "chat.augment")
	defer span.End()

	text, err := p.searcher.Lookup(ctx, message)
	if err != nil {
		p.logger.Warn("search lookup failed; continuing without augmentation", "error", err)
		return ""
	}
	return text
}

// complete calls the completion provider with the assembled prompts.
func (p *Pipeline) complete(ctx context.Context, assembled prompt.Prompt) (provider.CompletionResponse, error) {
	ctx, span := p.tracer.Start(ctx, "chat.complete",
		trace.WithAttributes(attribute.String("chat.model", p.provider.ModelName())))
	defer span.End()

	return p.provider.Complete(ctx, provider.CompletionRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleSystem, Content: assembled.System},
			{Role: provider.MessageRoleUser, Content: assembled.User},
		},
	})
}

// record appends a usage-log entry. Best effort: failures are logged and
// never affect the response.
func (p *Pipeline) record(ctx context.Context, identity, outcome string, latency time.Duration, tokens int) {
	if p.recorder == nil {
		return
	}

	status := 200
	switch Kind(outcome) {
	case KindMisconfigured, KindUpstream:
		status = 500
	case KindRateLimited:
		status = 429
	case KindInvalidInput:
		status = 400
	}

	// The response may already be written; recording must survive request
	// cancellation.
	ctx = context.WithoutCancel(ctx)

	entry := stats.Entry{
		At:       time.Now(),
		Identity: identity,
		Outcome:  outcome,
		Status:   status,
		Latency:  latency,
		Tokens:   tokens,
	}
	if rerr := p.recorder.Record(ctx, entry); rerr != nil {
		p.logger.Warn("usage record failed", "error", rerr)
	}
}
