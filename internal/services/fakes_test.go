package services

import (
	"context"
	"sync"
	"time"

	"github.com/sampogi19/SafeSpace/internal/model"
	"github.com/sampogi19/SafeSpace/internal/repository"
)

// --- in-memory stores shared by the service tests ---

type fakeOTPStore struct {
	mu   sync.Mutex
	rows map[string]model.OTPCode
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{rows: map[string]model.OTPCode{}}
}

func otpKey(email, purpose string) string { return email + "|" + purpose }

func (f *fakeOTPStore) Upsert(_ context.Context, email, purpose, code string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[otpKey(email, purpose)] = model.OTPCode{
		Email: email, Purpose: purpose, Code: code, ExpiresAt: exp, CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeOTPStore) Get(_ context.Context, email, purpose string) (*model.OTPCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.rows[otpKey(email, purpose)]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeOTPStore) Delete(_ context.Context, email, purpose string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, otpKey(email, purpose))
	return nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int64

	// otps backs the conditional consume in ResetPassword, mirroring the
	// transactional delete the real repository performs.
	otps *fakeOTPStore
}

func newFakeUserStore(otps *fakeOTPStore) *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}, otps: otps}
}

func (f *fakeUserStore) CreateUser(_ context.Context, email, passwordhash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now()
	f.users[email] = &model.User{
		ID: f.nextID, Email: email, PasswordHash: passwordhash, CreatedAt: &now,
	}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserStore) MarkVerified(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		u.IsVerified = true
	}
	return nil
}

func (f *fakeUserStore) ResetPassword(ctx context.Context, email, passwordhash, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.otps.rows[otpKey(email, model.OTPPurposeRecovery)]
	if !ok || o.Code != code {
		return repository.ErrOTPConsumed
	}
	delete(f.otps.rows, otpKey(email, model.OTPPurposeRecovery))
	if u, exists := f.users[email]; exists {
		u.PasswordHash = passwordhash
		now := time.Now()
		u.LastPasswordResetAt = &now
	}
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Code    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendOTPEmail(_ context.Context, toEmail, subject, code string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: toEmail, Subject: subject, Code: code})
	return nil
}

// fakeOTPEngine lets the auth tests pin verify outcomes directly.
type fakeOTPEngine struct {
	issued    []string // "purpose email"
	issueCode string
	issueErr  error
	verifyErr error
}

func (f *fakeOTPEngine) Issue(_ context.Context, purpose, email string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.issued = append(f.issued, purpose+" "+email)
	return f.issueCode, nil
}

func (f *fakeOTPEngine) Verify(_ context.Context, purpose, email, submitted string) error {
	return f.verifyErr
}
