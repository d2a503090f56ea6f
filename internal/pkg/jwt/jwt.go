package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// RoleDevice is the fixed role claim carried by device-scoped tokens.
const RoleDevice = "device"

var secret []byte

// SetSecret configures the shared signing secret (call on startup).
func SetSecret(s string) {
	if s != "" {
		secret = []byte(s)
	}
}

// UserClaims is the payload of a caller (admin UI) token.
type UserClaims struct {
	Role string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// DeviceClaims is the payload of a device-scoped token minted for the
// on-device agent. Validity is solely a function of signature and expiry.
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	Role     string `json:"role"`
	jwtlib.RegisteredClaims
}

// SignDeviceToken mints a token scoped to one device id, expiring ttl from now.
func SignDeviceToken(deviceID string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := DeviceClaims{
		DeviceID: deviceID,
		Role:     RoleDevice,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   deviceID,
			ExpiresAt: jwtlib.NewNumericDate(exp),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseUserToken validates a caller token and returns its claims.
func ParseUserToken(tokenStr string) (*UserClaims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &UserClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ParseDeviceToken validates a device-scoped token and returns its claims.
func ParseDeviceToken(tokenStr string) (*DeviceClaims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &DeviceClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*DeviceClaims)
	if !ok || !token.Valid || claims.DeviceID == "" {
		return nil, fmt.Errorf("invalid device token")
	}
	return claims, nil
}

func keyFunc(t *jwtlib.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return secret, nil
}
