package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/planfitapp/planfit/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "planfit-service-session||"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too short")
)

const minPasswordLen = 8

type usersStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Add(ctx context.Context, username, passwordHash string) (*User, error)
}

// Service logs users in and out, keeping session tokens in redis.
// A session key maps the token to the logged user ID, and expires
// together with the session.
type Service struct {
	users       usersStore
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	users usersStore,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:          users,
		redisClient:    redisClient,
		ttl:            ttl,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Add(ctx, username, passwordHash)
	if err != nil {
		return nil, err
	}

	log.Debugf("new user %d registered", user.ID)
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	cmdSet := s.redisClient.Set(ctx, sessionKey, user.ID, s.ttl)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	log.Debugf("user %d logged in", user.ID)
	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	sessionKey := sessionKeyPrefix + token
	cmdDel := s.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return err
	}
	if cmdDel.Val() == 0 {
		return errors.New("session not found")
	}
	return nil
}

// LoginChecker resolves a session token to the logged user ID.
type LoginChecker struct {
	redisClient *redis.Client
}

var ErrNotLoggedIn = errors.New("not logged in")

func NewLoginChecker(redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		redisClient: redisClient,
	}
}

func (c *LoginChecker) LoggedUserID(ctx context.Context, token string) (int64, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := c.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotLoggedIn
		}
		return 0, err
	}

	userID, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed session value: %w", err)
	}

	return userID, nil
}
