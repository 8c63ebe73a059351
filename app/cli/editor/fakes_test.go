package editor

import (
	"context"
	"sync"
	"time"

	shared "article-planner/app/shared"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs due timers on the calling goroutine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

type fakeClient struct {
	mu sync.Mutex

	generateRes *shared.GeneratePlanResponse
	generateErr *shared.ApiError

	nextId  int64
	saves   []shared.SavePlanRequest
	saveErr *shared.ApiError

	searches []shared.SearchSectionInfoRequest
	searchFn func(req shared.SearchSectionInfoRequest) (string, *shared.ApiError)
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		nextId: 41,
		generateRes: &shared.GeneratePlanResponse{
			H1:        "Trail Running Shoes",
			MetaTitle: "Best Trail Running Shoes",
			MetaDesc:  "Our picks for every terrain.",
			Sections: []*shared.OutlineSection{
				{Title: "Grip", Level: shared.HeadingLevelMajor},
				{Title: "Lugs", Level: shared.HeadingLevelMinor},
				{Title: "Fit", Level: shared.HeadingLevelMajor},
				{Title: "Toe box", Level: shared.HeadingLevelMinor},
			},
		},
		searchFn: func(req shared.SearchSectionInfoRequest) (string, *shared.ApiError) {
			return "facts about " + req.Section.Title, nil
		},
	}
}

func (c *fakeClient) Health() *shared.ApiError { return nil }

func (c *fakeClient) ListArticles(params shared.ListArticlesParams) ([]*shared.Article, *shared.ApiError) {
	return nil, nil
}

func (c *fakeClient) GetArticle(id int64) (*shared.Article, *shared.ApiError) {
	return nil, nil
}

func (c *fakeClient) UpdateArticleStatus(id int64, status shared.ArticleStatus) (*shared.Article, *shared.ApiError) {
	return nil, nil
}

func (c *fakeClient) ExportArticle(id int64, format shared.ExportFormat) (string, *shared.ApiError) {
	return "", nil
}

func (c *fakeClient) DeleteArticles(ids []int64) *shared.ApiError { return nil }

func (c *fakeClient) GeneratePlan(ctx context.Context, query string) (*shared.GeneratePlanResponse, *shared.ApiError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generateErr != nil {
		return nil, c.generateErr
	}
	return c.generateRes, nil
}

func (c *fakeClient) SavePlan(ctx context.Context, req shared.SavePlanRequest) (*shared.Article, *shared.ApiError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.saves = append(c.saves, req)
	if c.saveErr != nil {
		return nil, c.saveErr
	}

	id := c.nextId
	if req.Id != nil {
		id = *req.Id
	} else {
		c.nextId++
	}

	return &shared.Article{
		Id:        id,
		Query:     req.Query,
		H1:        req.H1,
		MetaTitle: req.MetaTitle,
		MetaDesc:  req.MetaDesc,
		Sections:  req.Sections,
	}, nil
}

func (c *fakeClient) SaveDraft(ctx context.Context, id int64, req shared.SaveDraftRequest) (*shared.Article, *shared.ApiError) {
	return nil, nil
}

func (c *fakeClient) SearchSectionInfo(ctx context.Context, req shared.SearchSectionInfoRequest) (*shared.SearchSectionInfoResponse, *shared.ApiError) {
	c.mu.Lock()
	c.searches = append(c.searches, req)
	fn := c.searchFn
	c.mu.Unlock()

	text, apiErr := fn(req)
	if apiErr != nil {
		return nil, apiErr
	}
	return &shared.SearchSectionInfoResponse{SourceInformation: text}, nil
}

func (c *fakeClient) saveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.saves)
}

func (c *fakeClient) lastSave() shared.SavePlanRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves[len(c.saves)-1]
}

func (c *fakeClient) setSaveErr(apiErr *shared.ApiError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveErr = apiErr
}
