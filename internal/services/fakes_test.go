package services

import (
	"context"
	"sync"
	"time"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/codeverse-ai/codeverse-backend/internal/models"
	"github.com/google/uuid"
)

// In-memory fakes for the service-layer contracts. Everything is guarded by
// a mutex so tests can share them freely.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return apperr.ErrConflict
	}
	cp := *user
	f.users[user.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return apperr.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeLoginStore struct {
	mu   sync.Mutex
	days map[uuid.UUID]map[time.Time]struct{}
}

func newFakeLoginStore() *fakeLoginStore {
	return &fakeLoginStore{days: make(map[uuid.UUID]map[time.Time]struct{})}
}

func (f *fakeLoginStore) Record(ctx context.Context, userID uuid.UUID, day time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	if f.days[userID] == nil {
		f.days[userID] = make(map[time.Time]struct{})
	}
	f.days[userID][d] = struct{}{}
	return nil
}

func (f *fakeLoginStore) Dates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []time.Time
	for d := range f.days[userID] {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeLoginStore) count(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.days[userID])
}

type fakeOTPStore struct {
	mu   sync.Mutex
	recs map[string]*models.PasswordResetRecord // by email, one active record
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{recs: make(map[string]*models.PasswordResetRecord)}
}

func (f *fakeOTPStore) Replace(ctx context.Context, rec *models.PasswordResetRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rec
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.recs[rec.Email] = &cp
	return nil
}

func (f *fakeOTPStore) Get(ctx context.Context, email string) (*models.PasswordResetRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeOTPStore) Clear(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.recs, email)
	return nil
}

func (f *fakeOTPStore) activeCount(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recs[email]; ok {
		return 1
	}
	return 0
}

type fakeFlowStore struct {
	mu    sync.Mutex
	flows map[string][2]string // flowID -> {email, step}
}

func newFakeFlowStore() *fakeFlowStore {
	return &fakeFlowStore{flows: make(map[string][2]string)}
}

func (f *fakeFlowStore) Put(ctx context.Context, flowID, email, step string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flows[flowID] = [2]string{email, step}
	return nil
}

func (f *fakeFlowStore) Get(ctx context.Context, flowID string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.flows[flowID]
	if !ok {
		return "", "", apperr.ErrFlowState
	}
	return v[0], v[1], nil
}

func (f *fakeFlowStore) Delete(ctx context.Context, flowID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.flows, flowID)
	return nil
}

// fakeCooldowns tracks cooldown deadlines against an injected clock.
type fakeCooldowns struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func newFakeCooldowns(now func() time.Time) *fakeCooldowns {
	return &fakeCooldowns{until: make(map[string]time.Time), now: now}
}

func (f *fakeCooldowns) Start(ctx context.Context, email string, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.until[email] = f.now().Add(d)
	return nil
}

func (f *fakeCooldowns) Remaining(ctx context.Context, email string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	deadline, ok := f.until[email]
	if !ok {
		return 0, nil
	}
	rem := deadline.Sub(f.now())
	if rem < 0 {
		return 0, nil
	}
	return rem, nil
}

type fakeMailer struct {
	mu       sync.Mutex
	welcomes []string
	otps     []string // "email:code"
	failNext bool
}

func (f *fakeMailer) SendWelcome(to, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errDeliveryDown
	}
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeMailer) SendOTP(to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errDeliveryDown
	}
	f.otps = append(f.otps, to+":"+code)
	return nil
}

func (f *fakeMailer) sentOTPs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.otps)
}

var errDeliveryDown = &deliveryDownError{}

type deliveryDownError struct{}

func (*deliveryDownError) Error() string { return "smtp connection refused" }

type fakeSessionInvalidator struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (f *fakeSessionInvalidator) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, userID)
	return nil
}

// fakeClock steps wall-clock time manually.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{t: start}
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
