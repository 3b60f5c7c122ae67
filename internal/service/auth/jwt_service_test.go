package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/config"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

func newTestService(t *testing.T, secret string, lifetime time.Duration, now time.Time) JWTService {
	t.Helper()
	svc, err := NewJWTServiceWithClock(config.AuthConfig{
		JWTSecret:     secret,
		TokenLifetime: lifetime,
	}, func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetime: time.Hour})
	assert.ErrorIs(t, err, ErrWeakSecret)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetime: time.Hour})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 30 * 24 * time.Hour
	deviceID := uuid.New()
	svc := newTestService(t, testSecret, lifetime, fixedTime)

	token, err := svc.GenerateToken(context.Background(), deviceID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, deviceID, claims.DeviceID)
	assert.Equal(t, TokenTypeDevice, claims.TokenType)
	assert.Equal(t, deviceID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := time.Hour
	deviceID := uuid.New()

	mint := func(t *testing.T) string {
		token, err := newTestService(t, testSecret, lifetime, fixedTime).
			GenerateToken(context.Background(), deviceID)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		secret  string
		at      time.Time
		wantErr error
	}{
		{
			name:   "valid token",
			token:  mint,
			secret: testSecret,
			at:     fixedTime.Add(time.Minute),
		},
		{
			name:    "expired token",
			token:   mint,
			secret:  testSecret,
			at:      fixedTime.Add(lifetime + time.Hour),
			wantErr: ErrExpiredToken,
		},
		{
			name:    "issued in the future",
			token:   mint,
			secret:  testSecret,
			at:      fixedTime.Add(-time.Hour),
			wantErr: ErrTokenNotYetValid,
		},
		{
			name:   "within clock skew",
			token:  mint,
			secret: testSecret,
			at:     fixedTime.Add(lifetime + time.Minute),
		},
		{
			name:    "invalid signature",
			token:   mint,
			secret:  wrongSecret,
			at:      fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   func(*testing.T) string { return "this.is.not.a.valid.jwt.token" },
			secret:  testSecret,
			at:      fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   func(*testing.T) string { return "" },
			secret:  testSecret,
			at:      fixedTime,
			wantErr: ErrMissingToken,
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					DeviceID:  deviceID,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
					SignedString([]byte(testSecret))
				require.NoError(t, err)
				return signed
			},
			secret:  testSecret,
			at:      fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name: "unexpected signing method",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					DeviceID:  deviceID,
					TokenType: TokenTypeDevice,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).
					SignedString([]byte(testSecret))
				require.NoError(t, err)
				return signed
			},
			secret:  testSecret,
			at:      fixedTime,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			token := tt.token(t)
			svc := newTestService(t, tt.secret, lifetime, tt.at)

			claims, err := svc.ValidateToken(context.Background(), token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, deviceID, claims.DeviceID)
		})
	}
}
