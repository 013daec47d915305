package oauth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StateTTL bounds how long a sign-in may take between redirect and callback.
const StateTTL = 10 * time.Minute

var ErrInvalidState = errors.New("invalid oauth state")

// NonceStore remembers issued nonces until they are consumed once.
type NonceStore interface {
	Save(ctx context.Context, nonce string, ttl time.Duration) error
	// Consume reports whether nonce was outstanding and removes it.
	Consume(ctx context.Context, nonce string) (bool, error)
}

type stateClaims struct {
	Provider string `json:"prv"`
	jwt.RegisteredClaims
}

// StateIssuer signs the OAuth state parameter and enforces one-time use.
type StateIssuer struct {
	secret []byte
	store  NonceStore
	now    func() time.Time
}

func NewStateIssuer(secret string, store NonceStore) *StateIssuer {
	return &StateIssuer{secret: []byte(secret), store: store, now: time.Now}
}

// Issue returns a signed state for provider and the nonce bound into it.
func (s *StateIssuer) Issue(ctx context.Context, provider string) (state, nonce string, err error) {
	nonce = uuid.NewString()
	now := s.now()

	claims := stateClaims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(StateTTL)),
		},
	}
	state, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign state: %w", err)
	}
	if err := s.store.Save(ctx, nonce, StateTTL); err != nil {
		return "", "", fmt.Errorf("save state nonce: %w", err)
	}
	return state, nonce, nil
}

// Verify checks the state returned to the callback and consumes its nonce.
func (s *StateIssuer) Verify(ctx context.Context, state, provider string) (string, error) {
	var claims stateClaims
	tkn, err := jwt.ParseWithClaims(state, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return "", ErrInvalidState
	}
	if claims.Provider != provider || claims.ID == "" {
		return "", ErrInvalidState
	}

	ok, err := s.store.Consume(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("consume state nonce: %w", err)
	}
	if !ok {
		return "", ErrInvalidState
	}
	return claims.ID, nil
}

// MemoryNonceStore keeps nonces in process memory. Used when Redis is not configured.
type MemoryNonceStore struct {
	mu     sync.Mutex
	nonces map[string]time.Time
	now    func() time.Time
}

func NewMemoryNonceStore() *MemoryNonceStore {
	return &MemoryNonceStore{nonces: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryNonceStore) Save(_ context.Context, nonce string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.nonces {
		if now.After(exp) {
			delete(m.nonces, k)
		}
	}
	m.nonces[nonce] = now.Add(ttl)
	return nil
}

func (m *MemoryNonceStore) Consume(_ context.Context, nonce string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.nonces[nonce]
	if !ok {
		return false, nil
	}
	delete(m.nonces, nonce)
	return m.now().Before(exp), nil
}
