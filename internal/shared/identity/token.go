package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims are the JWT claims carried by admin tokens
type Claims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	EventID  string `json:"event_id,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenIssuer signs and parses HS256 admin tokens
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue creates an access/refresh pair for the principal
func (t *TokenIssuer) Issue(p *Principal) (*TokenPair, error) {
	access, err := t.sign(p, TokenTypeAccess, t.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := t.sign(p, TokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(t.accessTTL.Seconds()),
	}, nil
}

func (t *TokenIssuer) sign(p *Principal, tokenType string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		AdminID:  p.AdminID.String(),
		Username: p.Username,
		FullName: p.FullName,
		Role:     string(p.Role),
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    t.issuer,
			Subject:   p.AdminID.String(),
			ID:        uuid.NewString(),
		},
	}
	if p.EventID != nil {
		claims.EventID = p.EventID.String()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse validates a token of the wanted type and rebuilds the principal
func (t *TokenIssuer) Parse(tokenString, wantType string) (*Principal, error) {
	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != wantType {
		return nil, ErrInvalidToken
	}

	return claims.Principal()
}

// Principal converts the claims back into the session object
func (c *Claims) Principal() (*Principal, error) {
	adminID, err := uuid.Parse(c.AdminID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role := Role(c.Role)
	if !role.IsValid() {
		return nil, ErrInvalidToken
	}

	p := &Principal{
		AdminID:  adminID,
		Username: c.Username,
		FullName: c.FullName,
		Role:     role,
	}
	if c.EventID != "" {
		eventID, err := uuid.Parse(c.EventID)
		if err != nil {
			return nil, ErrInvalidToken
		}
		p.EventID = &eventID
	}
	if p.Role == RoleEventAdmin && p.EventID == nil {
		return nil, ErrInvalidToken
	}
	return p, nil
}
