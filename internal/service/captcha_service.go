package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrInvalidCaptcha is returned when a guest challenge response does not
// match the issued value, has the wrong length, or has expired.
var ErrInvalidCaptcha = errors.New("invalid captcha")

const (
	captchaKeyPrefix = "captcha:"
	captchaTTL       = 5 * time.Minute
	challengeLength  = 6

	// 0/O and 1/l are excluded so the challenge stays readable.
	challengeAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"
)

// CaptchaService issues and verifies the 6-character challenge gating guest
// bookings. Challenges are stored in Redis with a TTL and are single use.
type CaptchaService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewCaptchaService(redisClient *redis.Client, log *logrus.Logger) *CaptchaService {
	return &CaptchaService{
		redisClient: redisClient,
		log:         log,
	}
}

// Issue generates a new challenge, stores it, and returns (challengeID, value).
func (s *CaptchaService) Issue(ctx context.Context) (string, string, error) {
	value, err := generateChallenge()
	if err != nil {
		return "", "", err
	}

	challengeID := uuid.New().String()
	key := captchaKeyPrefix + challengeID
	if err := s.redisClient.Set(ctx, key, value, captchaTTL).Err(); err != nil {
		s.log.Warnf("Failed to store captcha challenge: %+v", err)
		return "", "", err
	}

	return challengeID, value, nil
}

// Verify checks the guest's input against the issued challenge. The length
// check happens before any lookup; matching is case-insensitive. A matched
// challenge is consumed so it cannot be replayed.
func (s *CaptchaService) Verify(ctx context.Context, challengeID, input string) error {
	if len(input) != challengeLength {
		return ErrInvalidCaptcha
	}

	key := captchaKeyPrefix + challengeID
	issued, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidCaptcha
		}
		s.log.Warnf("Failed to fetch captcha challenge: %+v", err)
		return err
	}

	if !challengeMatches(issued, input) {
		return ErrInvalidCaptcha
	}

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		// The challenge verified; failing to consume it is not fatal.
		s.log.Warnf("Failed to consume captcha challenge %s: %+v", challengeID, err)
	}
	return nil
}

func challengeMatches(issued, input string) bool {
	return len(input) == challengeLength && strings.EqualFold(issued, input)
}

func generateChallenge() (string, error) {
	buf := make([]byte, challengeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate challenge: %w", err)
	}
	for i, b := range buf {
		buf[i] = challengeAlphabet[int(b)%len(challengeAlphabet)]
	}
	return string(buf), nil
}
