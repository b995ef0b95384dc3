package service

import (
	"context"
	"errors"
	"time"

	"github.com/stocksuperhero/dashboard/internal/config"
	"github.com/stocksuperhero/dashboard/internal/events"
	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/session"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AccessKeyStore reads and updates access keys
type AccessKeyStore interface {
	ListActive(ctx context.Context) ([]model.AccessKey, error)
	RecordLogin(ctx context.Context, id int) error
}

// Claims are the values carried by a session token
type Claims struct {
	KeyID     int
	SessionID string
}

// AuthService handles access-key login and session tokens
type AuthService struct {
	keys      AccessKeyStore
	sessions  session.Store
	publisher events.Publisher
	cfg       config.AuthConfig
	topic     string
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	keys AccessKeyStore,
	sessions session.Store,
	publisher events.Publisher,
	cfg config.AuthConfig,
	topic string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		keys:      keys,
		sessions:  sessions,
		publisher: publisher,
		cfg:       cfg,
		topic:     topic,
		logger:    logger,
	}
}

// HashKey hashes a plain access key for storage
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks accessKey against the active keys and opens a new session
func (s *AuthService) Login(ctx context.Context, accessKey string) (*model.LoginResponse, error) {
	keys, err := s.keys.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var matched *model.AccessKey
	for i := range keys {
		if bcrypt.CompareHashAndPassword([]byte(keys[i].KeyHash), []byte(accessKey)) == nil {
			matched = &keys[i]
			break
		}
	}
	if matched == nil {
		s.logger.Debug("access key verification failed")
		return nil, ErrInvalidAccessKey
	}

	// Record login time
	if err := s.keys.RecordLogin(ctx, matched.ID); err != nil {
		s.logger.Warn("failed to record login", zap.Error(err), zap.Int("key_id", matched.ID))
	}

	now := time.Now().UTC()
	sess := &model.Session{
		ID:        uuid.New().String(),
		KeyID:     matched.ID,
		Filters:   model.NewFilterState(nil, nil, nil),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.generateToken(sess)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{Type: events.TypeLogin, KeyID: matched.ID, SessionID: sess.ID})
	s.logger.Info("access key login", zap.Int("key_id", matched.ID), zap.String("session_id", sess.ID))

	return &model.LoginResponse{
		Token:     token,
		SessionID: sess.ID,
		ExpiresAt: expiresAt,
		Label:     matched.Label,
	}, nil
}

// Logout deletes the session
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.TypeLogout, KeyID: claims.KeyID, SessionID: claims.SessionID})
	s.logger.Info("session closed", zap.Int("key_id", claims.KeyID), zap.String("session_id", claims.SessionID))
	return nil
}

// Authenticate validates the token and checks that its session still exists
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.KeyID != claims.KeyID {
		return nil, ErrSessionNotFound
	}
	return claims, nil
}

// generateToken signs a session token
func (s *AuthService) generateToken(sess *model.Session) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.SessionDuration)

	claims := jwt.MapClaims{
		"sub":  sess.KeyID,
		"sid":  sess.ID,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
		"type": "session",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("failed to sign session token", zap.Error(err))
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ValidateToken validates a JWT token and returns its claims if valid
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	// Check token type
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "session" {
		return nil, errors.New("invalid token type")
	}

	keyID, ok := claims["sub"].(float64)
	if !ok {
		return nil, errors.New("invalid key ID in token")
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return nil, errors.New("invalid session ID in token")
	}

	return &Claims{KeyID: int(keyID), SessionID: sessionID}, nil
}

func (s *AuthService) publish(ctx context.Context, e events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, s.topic, events.NewMessage(e)); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", e.Type), zap.Error(err))
	}
}
