package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bugemco/multimedia-request-hub/utils"
)

const sessionTTL = 24 * time.Hour

// SessionService owns the single shared admin credential and the set of
// live sessions. Sessions exist only in memory: a logout or a process
// restart invalidates them, there is no persistent flag anywhere.
type SessionService struct {
	username     string
	passwordHash []byte

	mu     sync.Mutex
	active map[string]time.Time
}

// NewSessionService hashes the configured admin password up front so
// the plaintext never sticks around past startup.
func NewSessionService(username, password string) (*SessionService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &SessionService{
		username:     username,
		passwordHash: hash,
		active:       make(map[string]time.Time),
	}, nil
}

// Login checks the credentials and, on success, issues a bearer token
// tied to a server-side session entry.
func (ss *SessionService) Login(username, password string) (string, error) {
	if username != ss.username {
		return "", errors.New("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(ss.passwordHash, []byte(password)); err != nil {
		return "", errors.New("invalid username or password")
	}

	sessionID := uuid.NewString()
	token, err := utils.GenerateSessionToken(sessionID, username, sessionTTL)
	if err != nil {
		return "", err
	}

	ss.mu.Lock()
	ss.active[sessionID] = time.Now().Add(sessionTTL)
	ss.mu.Unlock()

	utils.InfoLogger.Printf("Admin session issued: %s", sessionID)
	return token, nil
}

// Validate parses the token and checks its session is still live.
func (ss *SessionService) Validate(token string) (*utils.SessionClaims, error) {
	claims, err := utils.ParseSessionToken(token)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	expiry, ok := ss.active[claims.SessionID]
	if ok && time.Now().After(expiry) {
		delete(ss.active, claims.SessionID)
		ok = false
	}
	ss.mu.Unlock()

	if !ok {
		return nil, errors.New("session is no longer valid")
	}
	return claims, nil
}

// Logout tears the session down. Unknown session IDs are a no-op.
func (ss *SessionService) Logout(sessionID string) {
	ss.mu.Lock()
	delete(ss.active, sessionID)
	ss.mu.Unlock()
	utils.InfoLogger.Printf("Admin session revoked: %s", sessionID)
}
