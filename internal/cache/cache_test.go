package cache

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Run("no query", func(t *testing.T) {
		key := Key("doctors", "/api/patient/doctors", nil)
		assert.Equal(t, "doctors:/api/patient/doctors", key)
	})

	t.Run("params sorted by name", func(t *testing.T) {
		a := Key("doctors", "/api/patient/doctors", url.Values{
			"department_id": {"dep-1"},
			"available":     {"true"},
		})
		b := Key("doctors", "/api/patient/doctors", url.Values{
			"available":     {"true"},
			"department_id": {"dep-1"},
		})
		assert.Equal(t, a, b)
		assert.Equal(t, "doctors:/api/patient/doctors?available=true&department_id=dep-1", a)
	})

	t.Run("different paths get different keys", func(t *testing.T) {
		a := Key("doctors", "/api/patient/doctors/doc-1", nil)
		b := Key("doctors", "/api/patient/doctors/doc-2", nil)
		assert.NotEqual(t, a, b)
	})

	t.Run("prefix stays a match target for invalidation", func(t *testing.T) {
		key := Key("appointments", "/api/patient/appointments", url.Values{"status": {"Booked"}})
		assert.Contains(t, key, "appointments:")
	})
}

func TestClientNilPassThrough(t *testing.T) {
	ctx := context.Background()

	// A client without redis behaves like an always-miss cache.
	c := New(nil, nil)
	c.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	c.InvalidatePrefix(ctx, "doctors")

	// A nil *Client is safe too.
	var nilClient *Client
	_, ok = nilClient.Get(ctx, "k")
	assert.False(t, ok)
	nilClient.Set(ctx, "k", nil, time.Minute)
	nilClient.InvalidatePrefix(ctx, "doctors")
}
