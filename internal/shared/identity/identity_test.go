package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanManageEvent(t *testing.T) {
	eventID := uuid.New()
	other := uuid.New()

	super := &Principal{AdminID: uuid.New(), Role: RoleSuperAdmin}
	scoped := &Principal{AdminID: uuid.New(), Role: RoleEventAdmin, EventID: &eventID}
	unscoped := &Principal{AdminID: uuid.New(), Role: RoleEventAdmin}
	var missing *Principal

	assert.True(t, super.CanManageEvent(other))
	assert.True(t, scoped.CanManageEvent(eventID))
	assert.False(t, scoped.CanManageEvent(other))
	assert.False(t, unscoped.CanManageEvent(eventID))
	assert.False(t, missing.CanManageEvent(eventID))
	assert.False(t, missing.IsSuperAdmin())
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", "seatflow", time.Hour, 24*time.Hour)
	eventID := uuid.New()
	p := &Principal{AdminID: uuid.New(), Username: "giros", FullName: "Admin - Giros", Role: RoleEventAdmin, EventID: &eventID}

	pair, err := issuer.Issue(p)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	got, err := issuer.Parse(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, p.AdminID, got.AdminID)
	assert.Equal(t, RoleEventAdmin, got.Role)
	require.NotNil(t, got.EventID)
	assert.Equal(t, eventID, *got.EventID)

	_, err = issuer.Parse(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse(pair.RefreshToken, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	a := NewTokenIssuer("secret-a", "seatflow", time.Hour, time.Hour)
	b := NewTokenIssuer("secret-b", "seatflow", time.Hour, time.Hour)

	pair, err := a.Issue(&Principal{AdminID: uuid.New(), Role: RoleSuperAdmin})
	require.NoError(t, err)

	_, err = b.Parse(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseReportsExpiry(t *testing.T) {
	issuer := NewTokenIssuer("secret", "seatflow", time.Minute, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	pair, err := issuer.Issue(&Principal{AdminID: uuid.New(), Role: RoleSuperAdmin})
	require.NoError(t, err)

	_, err = issuer.Parse(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
