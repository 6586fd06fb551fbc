package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_ComputesExpiryInMillis(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	s := NewSession("T1", 3600, User{ID: 7}, now)

	assert.Equal(t, int64(1_700_003_600_000), s.TokenExpiry)
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt())
}

func TestSession_Expired(t *testing.T) {
	now := time.UnixMilli(10_000)

	tests := []struct {
		name   string
		expiry int64
		want   bool
	}{
		{"unknown expiry never expires", 0, false},
		{"future", 10_001, false},
		{"exactly now", 10_000, true},
		{"past", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Token: "t", TokenExpiry: tt.expiry}
			assert.Equal(t, tt.want, s.Expired(now))
		})
	}
}

func TestProfileUpdate_OmitsUnsetFields(t *testing.T) {
	age := 31
	b, err := json.Marshal(ProfileUpdate{Age: &age})
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":31}`, string(b))

	assert.True(t, ProfileUpdate{}.Empty())
	assert.False(t, ProfileUpdate{Age: &age}.Empty())
}

func TestSendMessageRequest_NullPainScale(t *testing.T) {
	b, err := json.Marshal(SendMessageRequest{Text: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi","pain_scale":null}`, string(b))
}

func TestFullNames(t *testing.T) {
	assert.Equal(t, "Ann Lee", User{FirstName: "Ann", LastName: "Lee"}.FullName())
	assert.Equal(t, "Ann", User{FirstName: "Ann"}.FullName())
	assert.Equal(t, "Dr. Maria Stone", Doctor{FirstName: "Maria", LastName: "Stone"}.FullName())
}
