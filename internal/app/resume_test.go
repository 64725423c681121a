package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"wordlebot/internal/domain"
)

func playedSession(t *testing.T, svc *Service) Session {
	t.Helper()
	s, _, err := svc.Start(context.Background(), "trace")
	require.NoError(t, err)
	s, _, err = svc.Advance(context.Background(), s, domain.Compute("grape", "trace"))
	require.NoError(t, err)
	return s
}

func TestResumeRoundTrip(t *testing.T) {
	svc := newTestService(t, &fakeSelector{})
	codec, err := NewResumeCodec("secret", "", time.Hour)
	require.NoError(t, err)

	want := playedSession(t, svc)
	token, err := codec.Encode(want)
	require.NoError(t, err)

	r, err := codec.Decode(token)
	require.NoError(t, err)
	got, err := svc.Resume(r)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resumed session mismatch (-want +got):\n%s", diff)
	}
}

func TestResumeFreshSession(t *testing.T) {
	svc := newTestService(t, &fakeSelector{})
	codec, err := NewResumeCodec("secret", "", 0)
	require.NoError(t, err)

	start, _, err := svc.Start(context.Background(), "trace")
	require.NoError(t, err)
	token, err := codec.Encode(start)
	require.NoError(t, err)

	r, err := codec.Decode(token)
	require.NoError(t, err)
	require.Empty(t, r.History)

	got, err := svc.Resume(r)
	require.NoError(t, err)
	require.Equal(t, start, got)
}

func TestResumeRejectsBadTokens(t *testing.T) {
	svc := newTestService(t, &fakeSelector{})
	codec, err := NewResumeCodec("secret", "", time.Hour)
	require.NoError(t, err)

	started, _, err := svc.Start(context.Background(), "crane")
	require.NoError(t, err)
	tokenA, err := codec.Encode(started)
	require.NoError(t, err)
	tokenB, err := codec.Encode(playedSession(t, svc))
	require.NoError(t, err)

	partsA := strings.Split(tokenA, ".")
	partsB := strings.Split(tokenB, ".")
	tampered := strings.Join([]string{partsA[0], partsB[1], partsA[2]}, ".")

	other, err := NewResumeCodec("other-secret", "", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Encode(started)
	require.NoError(t, err)

	otherIssuer, err := NewResumeCodec("secret", "someone-else", time.Hour)
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.Encode(started)
	require.NoError(t, err)

	expiredCodec, err := NewResumeCodec("secret", "", time.Minute)
	require.NoError(t, err)
	expiredCodec.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredCodec.Encode(started)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"tampered payload": tampered,
		"wrong secret":     foreign,
		"wrong issuer":     wrongIssuer,
		"expired":          expired,
		"garbage":          "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode(token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewResumeCodecRequiresSecret(t *testing.T) {
	_, err := NewResumeCodec("", "", time.Hour)
	require.Error(t, err)
}
