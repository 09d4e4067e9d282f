package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
	apperrors "github.com/kishore28kumar/pulss/pkg/errors"
)

// ResultSink receives one SearchResult per completed search. The engine
// makes no assumption about how it is rendered. The sink is called with
// delivery serialized and must not call back into the controller.
type ResultSink func(result *entities.SearchResult)

// VoiceState names the states of the voice capture state machine.
type VoiceState string

const (
	VoiceStateIdle      VoiceState = "idle"
	VoiceStateListening VoiceState = "listening"
)

const defaultDebounce = 300 * time.Millisecond

// SearchInputController turns raw keystrokes and voice results into a
// single, rate-limited stream of search invocations. Rapid text changes are
// debounced with last-writer-wins semantics: only the text present when the
// timer fires is ever searched. Results of superseded invocations are
// discarded, never emitted out of order.
type SearchInputController struct {
	search      *SearchService
	suggestions *SuggestionService
	sink        ResultSink
	voice       providers.VoiceProvider // nil when the capability is absent
	notify      NoticeFunc
	debounce    time.Duration

	mu         sync.Mutex
	text       string
	timer      *time.Timer
	panelOpen  bool
	voiceState VoiceState

	generation atomic.Uint64
	emitMu     sync.Mutex // serializes the staleness check with delivery
}

// ControllerOption configures a SearchInputController.
type ControllerOption func(*SearchInputController)

// WithVoiceProvider wires the optional voice capture capability.
func WithVoiceProvider(voice providers.VoiceProvider) ControllerOption {
	return func(c *SearchInputController) { c.voice = voice }
}

// WithNotifier wires the recoverable-notice callback.
func WithNotifier(notify NoticeFunc) ControllerOption {
	return func(c *SearchInputController) { c.notify = notify }
}

// WithDebounce overrides the debounce delay. Hosts wiring the controller
// from configuration pass config.SearchConfig.DebounceDelay here.
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *SearchInputController) { c.debounce = d }
}

// NewSearchInputController creates an input controller over the search
// pipeline, suggestion store, and result sink.
func NewSearchInputController(search *SearchService, suggestions *SuggestionService, sink ResultSink, opts ...ControllerOption) *SearchInputController {
	c := &SearchInputController{
		search:      search,
		suggestions: suggestions,
		sink:        sink,
		debounce:    defaultDebounce,
		voiceState:  VoiceStateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnTextChanged records the latest text, resets suggestion selection, and
// re-arms the debounce timer. Superseded intermediate keystrokes never
// trigger their own invocation.
func (c *SearchInputController) OnTextChanged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = text
	c.panelOpen = true
	c.suggestions.ClearSelection()

	if c.timer != nil {
		c.timer.Stop()
	}
	gen := c.generation.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(c.debounce, func() {
		// A timer that was superseded while its callback was already
		// scheduled must not invoke at all.
		c.mu.Lock()
		if c.timer != timer {
			c.mu.Unlock()
			return
		}
		c.timer = nil
		c.mu.Unlock()
		c.invoke(context.Background(), text, gen)
	})
	c.timer = timer
}

// OnSubmit cancels any pending debounce timer and invokes the pipeline
// immediately with the given text.
func (c *SearchInputController) OnSubmit(ctx context.Context, text string) {
	c.mu.Lock()
	c.text = text
	c.cancelTimerLocked()
	gen := c.generation.Add(1)
	c.mu.Unlock()

	c.invoke(ctx, text, gen)
}

// OnClear resets the text to empty, invokes the pipeline with the empty
// query (yielding the canonical empty result), and closes the panel.
func (c *SearchInputController) OnClear(ctx context.Context) {
	c.mu.Lock()
	c.text = ""
	c.panelOpen = false
	c.suggestions.ClearSelection()
	c.cancelTimerLocked()
	gen := c.generation.Add(1)
	c.mu.Unlock()

	c.invoke(ctx, "", gen)
}

func (c *SearchInputController) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// invoke runs one pipeline invocation for a generation claimed at event
// time. The result is delivered to the sink and recorded into history only
// if no newer generation was claimed in the meantime; stale results are
// dropped.
func (c *SearchInputController) invoke(ctx context.Context, text string, gen uint64) {
	result := c.search.Search(ctx, text)

	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	if c.generation.Load() != gen {
		log.Debug().Str("query", text).Msg("discarding superseded search result")
		return
	}

	c.suggestions.RecordSearch(ctx, NormalizeQuery(text), len(result.Products))
	if c.sink != nil {
		c.sink(result)
	}
}

// StartVoice runs one voice capture: transition to listening, block until a
// transcript or error, then return to idle. A successful transcript sets
// the text and triggers an immediate, non-debounced search. All failures
// are recoverable and surfaced as notices.
func (c *SearchInputController) StartVoice(ctx context.Context) error {
	c.mu.Lock()
	if c.voice == nil {
		c.mu.Unlock()
		c.sendNotice("Voice search is not available on this device.")
		return apperrors.NewUnavailableError("voice capability absent", providers.ErrVoiceUnavailable)
	}
	if c.voiceState == VoiceStateListening {
		c.mu.Unlock()
		return apperrors.NewUnavailableError("voice capture already in progress", nil)
	}
	c.voiceState = VoiceStateListening
	c.mu.Unlock()

	transcript, err := c.voice.StartListening(ctx)

	c.mu.Lock()
	c.voiceState = VoiceStateIdle
	c.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("voice recognition failed")
		c.sendNotice("Voice recognition failed. Please try again.")
		return apperrors.NewExternalError("voice recognition failed", err)
	}

	c.OnSubmit(ctx, transcript)
	return nil
}

// StopVoice aborts an in-progress capture and returns the state machine to
// idle.
func (c *SearchInputController) StopVoice() error {
	c.mu.Lock()
	voice := c.voice
	c.voiceState = VoiceStateIdle
	c.mu.Unlock()

	if voice == nil {
		return apperrors.NewUnavailableError("voice capability absent", providers.ErrVoiceUnavailable)
	}
	if err := voice.StopListening(); err != nil {
		log.Warn().Err(err).Msg("failed to stop voice capture")
		c.sendNotice("Could not stop voice capture.")
		return apperrors.NewExternalError("failed to stop voice capture", err)
	}
	return nil
}

// VoiceState returns the current voice capture state.
func (c *SearchInputController) VoiceState() VoiceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voiceState
}

// Suggestions returns the current merged suggestion list for the panel.
func (c *SearchInputController) Suggestions(ctx context.Context) []string {
	return c.suggestions.MergedSuggestions(ctx)
}

// OnArrowDown moves the suggestion selection down, clamping at the end.
func (c *SearchInputController) OnArrowDown() int {
	return c.suggestions.MoveDown()
}

// OnArrowUp moves the suggestion selection up, clamping at no-selection.
func (c *SearchInputController) OnArrowUp() int {
	return c.suggestions.MoveUp()
}

// OnEnter re-issues the selected suggestion as an immediate search, or
// submits the current text when nothing is selected.
func (c *SearchInputController) OnEnter(ctx context.Context) {
	if query, ok := c.suggestions.Selected(); ok {
		c.mu.Lock()
		c.panelOpen = false
		c.suggestions.ClearSelection()
		c.mu.Unlock()
		c.OnSubmit(ctx, query)
		return
	}

	c.mu.Lock()
	text := c.text
	c.mu.Unlock()
	c.OnSubmit(ctx, text)
}

// OnEscape clears the selection and closes the suggestion panel.
func (c *SearchInputController) OnEscape() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestions.ClearSelection()
	c.panelOpen = false
}

// PanelOpen reports whether the suggestion panel is open.
func (c *SearchInputController) PanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panelOpen
}

// Text returns the current input text.
func (c *SearchInputController) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Close cancels any pending debounce timer.
func (c *SearchInputController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimerLocked()
}

func (c *SearchInputController) sendNotice(message string) {
	if c.notify != nil {
		c.notify(message)
	}
}
