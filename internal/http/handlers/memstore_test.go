package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
	"fundtrack/internal/snapshot"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// memStore implements all three repositories in memory.
type memStore struct {
	mu            sync.Mutex
	interns       []domain.Intern
	admins        []domain.AuthUser
	donations     []domain.Donation
	announcements []domain.Announcement
	failDonations error
	seq           int
}

func (m *memStore) ListInterns(context.Context) ([]domain.Intern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Intern(nil), m.interns...), nil
}

func (m *memStore) GetIntern(_ context.Context, id string) (*domain.Intern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range m.interns {
		if in.ID == id {
			cp := in
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) GetUser(_ context.Context, id string) (*domain.AuthUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.admins {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	for _, in := range m.interns {
		if in.ID == id {
			return &domain.AuthUser{ID: in.ID, Email: in.Email, FullName: in.FullName, Role: domain.UserRoleIntern}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) CreateProfile(_ context.Context, p domain.NewProfile, goal decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.admins {
		if u.ID == p.ID {
			return domain.ErrConflict
		}
	}
	for _, in := range m.interns {
		if in.ID == p.ID {
			return domain.ErrConflict
		}
	}
	if p.Role == domain.UserRoleAdmin {
		m.admins = append(m.admins, domain.AuthUser{ID: p.ID, Email: p.Email, FullName: p.FullName, Role: p.Role})
		return nil
	}
	m.interns = append(m.interns, domain.Intern{
		ID:              p.ID,
		Email:           p.Email,
		FullName:        p.FullName,
		FundraisingGoal: domain.DefaultGoal(p.Role, goal),
		CurrentAmount:   decimal.Zero,
		CreatedAt:       testNow,
	})
	return nil
}

func (m *memStore) UpdateProfile(_ context.Context, id string, goal decimal.Decimal, mentor string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.interns {
		if m.interns[i].ID == id {
			m.interns[i].FundraisingGoal = goal
			m.interns[i].Mentor = mentor
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) ListAll(context.Context) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDonations != nil {
		return nil, m.failDonations
	}
	return append([]domain.Donation(nil), m.donations...), nil
}

func (m *memStore) ListByIntern(_ context.Context, internID string) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDonations != nil {
		return nil, m.failDonations
	}
	var out []domain.Donation
	for _, d := range m.donations {
		if d.InternID == internID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) Record(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.interns {
		if m.interns[i].ID != d.InternID {
			continue
		}
		m.seq++
		d.ID = fmt.Sprintf("don-%d", m.seq)
		d.CreatedAt = testNow
		m.donations = append(m.donations, *d)
		m.interns[i].CurrentAmount = m.interns[i].CurrentAmount.Add(d.Amount)
		return nil
	}
	return domain.ErrNotFound
}

func (m *memStore) ListRecent(_ context.Context, limit int) ([]domain.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := append([]domain.Announcement(nil), m.announcements...)
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (m *memStore) Create(_ context.Context, a *domain.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = fmt.Sprintf("ann-%d", m.seq)
	a.CreatedAt = testNow
	m.announcements = append([]domain.Announcement{*a}, m.announcements...)
	return nil
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedStore() *memStore {
	return &memStore{
		interns: []domain.Intern{
			{ID: "asha", FullName: "Asha", Email: "asha@example.com", FundraisingGoal: amt("1000"), CurrentAmount: amt("250"), CreatedAt: testNow.AddDate(0, -2, 0)},
			{ID: "ben", FullName: "Ben", Email: "ben@example.com", FundraisingGoal: amt("2000"), CurrentAmount: amt("900"), CreatedAt: testNow.AddDate(0, -2, 0)},
			{ID: "chen", FullName: "Chen", Email: "chen@example.com", FundraisingGoal: decimal.Zero, CurrentAmount: decimal.Zero, CreatedAt: testNow.AddDate(0, -1, 0)},
		},
		admins: []domain.AuthUser{{ID: "root", Email: "root@example.com", FullName: "Root", Role: domain.UserRoleAdmin}},
		donations: []domain.Donation{
			{ID: "d1", InternID: "asha", DonorName: "P", Amount: amt("200"), PaymentMethod: domain.PaymentCash, DonationDate: testNow.AddDate(0, 0, -3).Truncate(24 * time.Hour), CreatedAt: testNow.AddDate(0, 0, -3)},
			{ID: "d2", InternID: "asha", DonorName: "Q", Amount: amt("50"), PaymentMethod: domain.PaymentCard, DonationDate: testNow.AddDate(0, 0, -2).Truncate(24 * time.Hour), CreatedAt: testNow.AddDate(0, 0, -2)},
			{ID: "d3", InternID: "ben", DonorName: "R", Amount: amt("900"), PaymentMethod: domain.PaymentOnline, DonationDate: testNow.AddDate(0, 0, -40).Truncate(24 * time.Hour), CreatedAt: testNow.AddDate(0, 0, -40)},
		},
		announcements: []domain.Announcement{
			{ID: "a1", Title: "one", Priority: domain.PriorityHigh},
			{ID: "a2", Title: "two", Priority: domain.PriorityLow},
			{ID: "a3", Title: "three", Priority: domain.PriorityMedium},
			{ID: "a4", Title: "four", Priority: domain.PriorityMedium},
			{ID: "a5", Title: "five", Priority: domain.PriorityMedium},
			{ID: "a6", Title: "six", Priority: domain.PriorityMedium},
		},
	}
}

func newTestApp(store *memStore) *App {
	loader := snapshot.NewLoader(store, store, store, time.Second, zerolog.Nop())
	app := NewApp(store, store, store, loader, amt("10000"), zerolog.Nop())
	app.Now = func() time.Time { return testNow }
	return app
}

func asUser(r *http.Request, id string, role domain.UserRole) *http.Request {
	return r.WithContext(WithUser(r.Context(), domain.AuthUser{ID: id, Role: role}))
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
