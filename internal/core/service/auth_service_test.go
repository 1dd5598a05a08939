package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooManyAttempts(_ context.Context, key string) (bool, error) {
	return t.failures[key] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, key string) error {
	t.failures[key]++
	return nil
}

func (t *stubThrottle) Clear(_ context.Context, key string) error {
	delete(t.failures, key)
	return nil
}

func newAuthService(repo ports.UserRepository, throttle LoginThrottle) *AuthService {
	return NewAuthService(
		repo,
		NewCredentialStore(bcrypt.MinCost),
		NewTokenService("secret", time.Hour),
		throttle,
		zerolog.Nop(),
	)
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    " Alice@Example.COM ",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestAuthService_Register_DuplicateNormalizedEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass123"}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	// Same address differing only in case and whitespace.
	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bobby", Email: "  BOB@example.com", Password: "pass456"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "abc"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("storage must be unchanged after a validation failure")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "Carol@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	userID, err := svc.tokens.Verify(token)
	if err != nil || userID != user.ID {
		t.Fatalf("token should verify to user %d, got %d (%v)", user.ID, userID, err)
	}
}

func TestAuthService_Login_UniformError(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})

	_, _, errUnknown := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, errBadPass := svc.Login(context.Background(), "dave@example.com", "badpass")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errBadPass, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", errBadPass)
	}
	if errUnknown.Error() != errBadPass.Error() {
		t.Fatalf("errors must not reveal which check failed: %q vs %q", errUnknown, errBadPass)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	throttle := newStubThrottle(3)
	svc := newAuthService(newStubUserRepo(), throttle)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Mallory", Email: "mallory@example.com", Password: "goodpass"})

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(context.Background(), "mallory@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Locked out now, even with the right password.
	if _, _, err := svc.Login(context.Background(), "mallory@example.com", "goodpass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ClearsThrottleOnSuccess(t *testing.T) {
	throttle := newStubThrottle(3)
	svc := newAuthService(newStubUserRepo(), throttle)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Nina", Email: "nina@example.com", Password: "goodpass"})

	_, _, _ = svc.Login(context.Background(), "nina@example.com", "wrong")
	if _, _, err := svc.Login(context.Background(), "nina@example.com", "goodpass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.failures["nina@example.com"] != 0 {
		t.Fatalf("successful login should clear the failure counter")
	}
}

func TestAuthService_GetUser_DeletedAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	user, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "Olga", Email: "olga@example.com", Password: "pass123"})
	if _, err := svc.GetUser(context.Background(), user.ID); err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	_ = svc.DeleteAccount(context.Background(), user.ID)
	if _, err := svc.GetUser(context.Background(), user.ID); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for deleted account, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	alice, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pass123"})
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass123"})

	newName := "Alice B."
	updated, err := svc.UpdateProfile(context.Background(), alice.ID, ports.UpdateProfileInput{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Alice B." || updated.Email != "alice@example.com" {
		t.Fatalf("unexpected user after partial update: %+v", updated)
	}

	taken := "BOB@example.com"
	if _, err := svc.UpdateProfile(context.Background(), alice.ID, ports.UpdateProfileInput{Email: &taken}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	newPass := "newsecret"
	oldHash := updated.PasswordHash
	rehashed, err := svc.UpdateProfile(context.Background(), alice.ID, ports.UpdateProfileInput{Password: &newPass})
	if err != nil {
		t.Fatalf("password update failed: %v", err)
	}
	if rehashed.PasswordHash == oldHash {
		t.Fatalf("password change must re-hash")
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
