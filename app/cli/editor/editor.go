package editor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"article-planner/app/cli/types"
	shared "article-planner/app/shared"

	"github.com/looplab/fsm"
)

const autosaveTimeout = 30 * time.Second

var (
	ErrBusy       = errors.New("another request is in progress")
	ErrEmptyQuery = errors.New("query is required")
	ErrNoArticle  = errors.New("no article loaded")
)

type WrongStateError struct {
	Action string
	State  string
}

func (e *WrongStateError) Error() string {
	return fmt.Sprintf("can't %s in state %s", e.Action, e.State)
}

type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("section index %d out of range (%d sections)", e.Index, e.Len)
}

type Progress struct {
	Completed int
	Total     int
}

func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
}

type Options struct {
	Clock         Clock
	AutosaveDelay time.Duration
	// OnChange runs after every state change that didn't come from a direct
	// call, like an autosave finishing. It must not call back into the
	// editor synchronously.
	OnChange func()
}

// Editor drives one article through query entry, outline editing and
// enrichment review. All methods are safe for concurrent use.
type Editor struct {
	mu sync.Mutex

	client   types.ApiClient
	clock    Clock
	workflow *fsm.FSM
	autosave *Debouncer
	onChange func()

	articleId *int64
	query     string
	outline   *Outline

	// version counts mutations so a slow autosave doesn't clear a newer dirty mark
	version   uint64
	dirty     bool
	busy      bool
	lastSaved time.Time
	err       error
	progress  Progress
}

func New(client types.ApiClient, opts Options) *Editor {
	return newEditor(client, StateQueryEntry, opts)
}

// Open resumes an existing article. It starts in review when any section
// already has enrichment text.
func Open(client types.ApiClient, article *shared.Article, opts Options) *Editor {
	outline := OutlineFromArticle(article)

	initial := StateOutlineEditing
	if outline.HasAnyEnrichment() {
		initial = StateEnrichmentReview
	}

	e := newEditor(client, initial, opts)
	id := article.Id
	e.articleId = &id
	e.query = article.Query
	e.outline = outline
	e.lastSaved = article.UpdatedAt

	return e
}

func newEditor(client types.ApiClient, initial string, opts Options) *Editor {
	clock := opts.Clock
	if clock == nil {
		clock = RealClock
	}
	delay := opts.AutosaveDelay
	if delay <= 0 {
		delay = AutosaveDelay
	}

	e := &Editor{
		client:   client,
		clock:    clock,
		workflow: newWorkflow(initial),
		onChange: opts.OnChange,
		outline:  &Outline{},
	}
	e.autosave = NewDebouncer(clock, delay, e.runAutosave)

	return e
}

func (e *Editor) State() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workflow.Current()
}

// Outline returns a copy of the current draft.
func (e *Editor) Outline() *Outline {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outline.Clone()
}

func (e *Editor) ArticleId() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.articleId == nil {
		return 0, false
	}
	return *e.articleId, true
}

func (e *Editor) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *Editor) LastSaved() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSaved
}

// Err is the last failure, cleared when the next action starts.
func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Editor) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

func (e *Editor) AutosavePending() bool {
	return e.autosave.Pending()
}

func (e *Editor) MissingEnrichment() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outline.MissingEnrichment()
}

// Submit generates an outline for query, saves it as a new article and
// moves on to outline editing.
func (e *Editor) Submit(ctx context.Context, query string) error {
	e.mu.Lock()
	if err := e.begin("submit a query", StateQueryEntry); err != nil {
		e.mu.Unlock()
		return err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		e.busy = false
		e.err = ErrEmptyQuery
		e.mu.Unlock()
		return ErrEmptyQuery
	}
	e.mu.Unlock()

	log.Printf("generating outline for %q", query)

	generated, apiErr := e.client.GeneratePlan(ctx, query)
	if apiErr != nil {
		return e.fail(apiErr)
	}

	outline := OutlineFromGenerated(generated)

	article, apiErr := e.client.SavePlan(ctx, outline.toSavePlanRequest(nil, query))
	if apiErr != nil {
		return e.fail(apiErr)
	}

	e.mu.Lock()
	id := article.Id
	e.articleId = &id
	e.query = query
	e.outline = outline
	e.dirty = false
	e.lastSaved = e.clock.Now()
	err := e.workflow.Event(ctx, EventGenerate)
	e.busy = false
	e.mu.Unlock()

	if err != nil {
		return err
	}

	log.Printf("created article %d with %d sections", id, len(outline.Sections))

	return nil
}

func (e *Editor) SetField(f Field, text string) error {
	return e.mutate("edit "+f.String(), func(o *Outline) (bool, error) {
		if !o.setField(f, text) {
			return false, fmt.Errorf("unknown field %d", f)
		}
		return true, nil
	})
}

func (e *Editor) SetSectionTitle(i int, text string) error {
	return e.mutate("edit a section", func(o *Outline) (bool, error) {
		if !o.inRange(i) {
			return false, &IndexError{Index: i, Len: len(o.Sections)}
		}
		o.Sections[i].Title = text
		return true, nil
	})
}

// MoveSection swaps section i with the one above (dir -1) or below (dir +1).
// Moving past either end does nothing.
func (e *Editor) MoveSection(i, dir int) error {
	return e.mutate("move a section", func(o *Outline) (bool, error) {
		if !o.inRange(i) {
			return false, &IndexError{Index: i, Len: len(o.Sections)}
		}
		return o.move(i, dir), nil
	})
}

func (e *Editor) DeleteSection(i int) error {
	return e.mutate("delete a section", func(o *Outline) (bool, error) {
		if !o.inRange(i) {
			return false, &IndexError{Index: i, Len: len(o.Sections)}
		}
		o.remove(i)
		return true, nil
	})
}

func (e *Editor) AddSection(level shared.HeadingLevel) error {
	return e.mutate("add a section", func(o *Outline) (bool, error) {
		if !level.Valid() {
			return false, fmt.Errorf("invalid level %q", level)
		}
		o.add(level)
		return true, nil
	})
}

func (e *Editor) ToggleLevel(i int) error {
	return e.mutate("change a section level", func(o *Outline) (bool, error) {
		if !o.inRange(i) {
			return false, &IndexError{Index: i, Len: len(o.Sections)}
		}
		o.Sections[i].Level = o.Sections[i].Level.Toggle()
		return true, nil
	})
}

// mutate applies fn to the outline while editing. fn reports whether it
// changed anything; changes mark the outline dirty and restart autosave.
func (e *Editor) mutate(action string, fn func(o *Outline) (bool, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return ErrBusy
	}
	if state := e.workflow.Current(); state != StateOutlineEditing {
		return &WrongStateError{Action: action, State: state}
	}

	changed, err := fn(e.outline)
	if err != nil {
		return err
	}
	if changed {
		e.markDirty()
	}
	return nil
}

func (e *Editor) markDirty() {
	e.version++
	e.dirty = true
	e.autosave.Trigger()
}

// EnrichSection fetches enrichment text for section i and saves it. The
// section only changes once the save succeeds.
func (e *Editor) EnrichSection(ctx context.Context, i int) error {
	e.mu.Lock()
	if err := e.begin("enrich a section", StateOutlineEditing, StateEnrichmentReview); err != nil {
		e.mu.Unlock()
		return err
	}
	req, err := e.searchRequest(i)
	if err != nil {
		e.busy = false
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	res, apiErr := e.client.SearchSectionInfo(ctx, req)
	if apiErr != nil {
		return e.fail(apiErr)
	}

	return e.commitSection(ctx, i, res.SourceInformation)
}

// SetSourceInformation overwrites the enrichment text of section i and saves
// right away.
func (e *Editor) SetSourceInformation(ctx context.Context, i int, text string) error {
	e.mu.Lock()
	if err := e.begin("edit enrichment text", StateEnrichmentReview); err != nil {
		e.mu.Unlock()
		return err
	}
	if !e.outline.inRange(i) {
		e.busy = false
		e.mu.Unlock()
		return &IndexError{Index: i, Len: len(e.outline.Sections)}
	}
	e.mu.Unlock()

	return e.commitSection(ctx, i, text)
}

// commitSection persists a copy of the outline with section i's text
// replaced, then swaps the copy in. Must be called with busy set.
func (e *Editor) commitSection(ctx context.Context, i int, text string) error {
	e.mu.Lock()
	draft := e.outline.Clone()
	if !draft.inRange(i) {
		e.busy = false
		e.mu.Unlock()
		return &IndexError{Index: i, Len: len(draft.Sections)}
	}
	draft.Sections[i].SourceInformation = &text
	e.autosave.Cancel()
	req := draft.toSavePlanRequest(e.articleId, e.query)
	e.mu.Unlock()

	article, apiErr := e.client.SavePlan(ctx, req)
	if apiErr != nil {
		e.mu.Lock()
		// the cancelled autosave still has to happen
		if e.dirty {
			e.autosave.Trigger()
		}
		e.mu.Unlock()
		return e.fail(apiErr)
	}

	e.mu.Lock()
	e.outline = draft
	e.saved(article)
	e.busy = false
	e.mu.Unlock()

	return nil
}

// Advance validates the outline, enriches every section in order (saving
// after each) and moves to review. The first failure stops the loop.
func (e *Editor) Advance(ctx context.Context) error {
	e.mu.Lock()
	if err := e.begin("start enrichment", StateOutlineEditing); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := Validate(e.outline); err != nil {
		e.busy = false
		e.err = err
		e.mu.Unlock()
		return err
	}
	e.autosave.Cancel()
	total := len(e.outline.Sections)
	e.progress = Progress{Completed: 0, Total: total}
	e.mu.Unlock()

	e.notify()

	for i := 0; i < total; i++ {
		e.mu.Lock()
		req, err := e.searchRequest(i)
		e.mu.Unlock()
		if err != nil {
			return e.abortEnrichment(err)
		}

		res, apiErr := e.client.SearchSectionInfo(ctx, req)
		if apiErr != nil {
			return e.abortEnrichment(apiErr)
		}

		e.mu.Lock()
		text := res.SourceInformation
		e.outline.Sections[i].SourceInformation = &text
		e.version++
		e.dirty = true
		saveReq := e.outline.toSavePlanRequest(e.articleId, e.query)
		e.mu.Unlock()

		article, apiErr := e.client.SavePlan(ctx, saveReq)
		if apiErr != nil {
			return e.abortEnrichment(apiErr)
		}

		e.mu.Lock()
		e.saved(article)
		e.progress.Completed = i + 1
		e.mu.Unlock()

		e.notify()
	}

	e.mu.Lock()
	err := e.workflow.Event(ctx, EventAdvance)
	e.busy = false
	e.mu.Unlock()

	return err
}

func (e *Editor) abortEnrichment(err error) error {
	e.mu.Lock()
	e.progress = Progress{}
	if e.dirty {
		e.autosave.Trigger()
	}
	e.mu.Unlock()

	log.Printf("enrichment aborted: %v", err)

	return e.fail(err)
}

// Back returns from review to outline editing, keeping everything in memory.
func (e *Editor) Back() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return ErrBusy
	}
	if state := e.workflow.Current(); state != StateEnrichmentReview {
		return &WrongStateError{Action: "go back", State: state}
	}

	e.err = nil
	e.progress = Progress{}
	return e.workflow.Event(context.Background(), EventBack)
}

// Flush saves now if there are unsaved changes.
func (e *Editor) Flush(ctx context.Context) error {
	e.autosave.Cancel()

	e.mu.Lock()
	if !e.dirty {
		e.mu.Unlock()
		return nil
	}
	version := e.version
	req := e.outline.toSavePlanRequest(e.articleId, e.query)
	e.mu.Unlock()

	return e.save(ctx, req, version)
}

func (e *Editor) runAutosave() {
	e.mu.Lock()
	if !e.dirty {
		e.mu.Unlock()
		return
	}
	version := e.version
	req := e.outline.toSavePlanRequest(e.articleId, e.query)
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
	defer cancel()

	err := e.save(ctx, req, version)
	if err != nil {
		log.Printf("autosave failed: %v", err)
	}

	e.notify()
}

func (e *Editor) save(ctx context.Context, req shared.SavePlanRequest, version uint64) error {
	article, apiErr := e.client.SavePlan(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()

	if apiErr != nil {
		e.err = apiErr
		return apiErr
	}

	e.setArticleId(article)
	e.lastSaved = e.clock.Now()
	e.err = nil
	if e.version == version {
		e.dirty = false
	}
	return nil
}

// saved records a save of the whole current outline. Called with mu held.
func (e *Editor) saved(article *shared.Article) {
	e.setArticleId(article)
	e.lastSaved = e.clock.Now()
	e.dirty = false
	e.err = nil
}

func (e *Editor) setArticleId(article *shared.Article) {
	if article != nil && article.Id != 0 {
		id := article.Id
		e.articleId = &id
	}
}

// begin claims the loading flag for a request-backed action. Called with mu
// held.
func (e *Editor) begin(action string, states ...string) error {
	if e.busy {
		return ErrBusy
	}

	current := e.workflow.Current()
	allowed := false
	for _, s := range states {
		if s == current {
			allowed = true
			break
		}
	}
	if !allowed {
		return &WrongStateError{Action: action, State: current}
	}

	e.busy = true
	e.err = nil
	return nil
}

// fail clears the loading flag and records err.
func (e *Editor) fail(err error) error {
	e.mu.Lock()
	e.busy = false
	e.err = err
	e.mu.Unlock()

	return err
}

// searchRequest builds the enrichment request for section i. Called with mu
// held.
func (e *Editor) searchRequest(i int) (shared.SearchSectionInfoRequest, error) {
	if !e.outline.inRange(i) {
		return shared.SearchSectionInfoRequest{}, &IndexError{Index: i, Len: len(e.outline.Sections)}
	}

	req := shared.SearchSectionInfoRequest{
		H1:      e.outline.H1,
		Section: copySection(e.outline.Sections[i]),
	}
	if parent := shared.ParentSection(e.outline.Sections, i); parent != nil {
		req.ParentSection = copySection(parent)
	}
	return req, nil
}

func (e *Editor) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}

// UserMessage is the text to show for an editor error. API errors show
// their detail when they have one.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *shared.ApiError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
