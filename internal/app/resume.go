package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"wordlebot/internal/domain"
)

// ErrInvalidToken is returned for resume tokens that fail signature, issuer,
// expiry or payload checks.
var ErrInvalidToken = errors.New("invalid resume token")

// DefaultIssuer is the issuer claim used when none is configured.
const DefaultIssuer = "wordlebot"

const (
	claimOpener  = "opn"
	claimHistory = "his"
	claimGuess   = "gss"
)

// Resume is the session state carried by a resume token.
type Resume struct {
	Opener  domain.Word
	History []Round
	Guess   domain.Word
}

// ResumeCodec signs and verifies HS256 resume tokens for stateless clients.
type ResumeCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewResumeCodec returns a codec. ttl <= 0 defaults to one hour and an empty
// issuer to DefaultIssuer.
func NewResumeCodec(secret, issuer string, ttl time.Duration) (*ResumeCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("resume secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &ResumeCodec{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Encode signs the opener, history and pending guess of s.
func (c *ResumeCodec) Encode(s Session) (string, error) {
	if c == nil {
		return "", fmt.Errorf("resume codec is nil")
	}
	history := make([]string, 0, len(s.History))
	for _, r := range s.History {
		history = append(history, r.String())
	}

	now := c.now()
	claims := jwt.MapClaims{
		"iss":        c.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(c.ttl).Unix(),
		claimOpener:  string(s.Opener),
		claimHistory: history,
		claimGuess:   string(s.Guess),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies tokenString and extracts its payload.
func (c *ResumeCodec) Decode(tokenString string) (Resume, error) {
	if c == nil {
		return Resume{}, fmt.Errorf("resume codec is nil")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Resume{}, ErrInvalidToken
	}
	if !claims.VerifyIssuer(c.issuer, true) {
		return Resume{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}

	opener, err := wordClaim(claims, claimOpener)
	if err != nil {
		return Resume{}, err
	}
	r := Resume{Opener: opener}

	if raw, _ := claims[claimGuess].(string); raw != "" {
		if r.Guess, err = domain.ParseWord(raw); err != nil {
			return Resume{}, fmt.Errorf("%w: guess: %v", ErrInvalidToken, err)
		}
	}

	items, _ := claims[claimHistory].([]interface{})
	for i, item := range items {
		round, err := parseRound(item)
		if err != nil {
			return Resume{}, fmt.Errorf("%w: history[%d]: %v", ErrInvalidToken, i, err)
		}
		r.History = append(r.History, round)
	}
	return r, nil
}

func wordClaim(claims jwt.MapClaims, key string) (domain.Word, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidToken, key)
	}
	w, err := domain.ParseWord(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidToken, key, err)
	}
	return w, nil
}

func parseRound(item interface{}) (Round, error) {
	raw, ok := item.(string)
	if !ok {
		return Round{}, fmt.Errorf("not a string")
	}
	word, feedback, ok := strings.Cut(raw, ":")
	if !ok {
		return Round{}, fmt.Errorf("malformed round %q", raw)
	}
	guess, err := domain.ParseWord(word)
	if err != nil {
		return Round{}, err
	}
	fb, err := domain.ParseFeedback(feedback)
	if err != nil {
		return Round{}, err
	}
	return Round{Guess: guess, Feedback: fb}, nil
}
