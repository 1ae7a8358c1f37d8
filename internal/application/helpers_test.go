package application_test

import (
	"sync"
	"testing"
	"time"

	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/realtime"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/internal/testutils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events map[uint][]realtime.Event
}

func (p *recordingPublisher) Publish(userID uint, e realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[uint][]realtime.Event)
	}
	p.events[userID] = append(p.events[userID], e)
}

func (p *recordingPublisher) count(userID uint) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events[userID])
}

type fixture struct {
	db    *gorm.DB
	repos *repository.Repos
	svc   *application.Services
	pub   *recordingPublisher
	world testutils.World
	clock *fakeClock
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutils.NewSQLiteDB(t)
	repos := repository.NewRepositories(gdb)
	pub := &recordingPublisher{}
	svc := application.New(repos, application.Options{
		Engagement: config.DefaultEngagement(),
		TokenTTL:   time.Hour,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
	})
	clock := &fakeClock{t: time.Now()}
	svc.SetClock(clock.Now)

	return &fixture{
		db:    gdb,
		repos: repos,
		svc:   svc,
		pub:   pub,
		world: testutils.SeedWorld(t, gdb),
		clock: clock,
	}
}

func (f *fixture) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func uintPtr(v uint) *uint { return &v }
