package ticket

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/blake2b"
)

// ErrInvalidTicket 代表確認憑證過期、遭竄改或與請求不符。
var ErrInvalidTicket = errors.New("invalid confirmation ticket")

// Claims 綁定確認動作種類、目標成員與請求內容摘要。
type Claims struct {
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
	Digest string `json:"digest"`
	jwt.RegisteredClaims
}

// Issuer 簽發/驗證短效確認憑證 (HS256)。
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer 建立確認憑證簽發器。
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Digest 回傳 payload 的 BLAKE2b-256 十六進位摘要。
func Digest(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Issue 為指定動作簽發憑證，回傳 token 與到期時間。
func (i *Issuer) Issue(kind, target string, payload []byte) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := Claims{
		Kind:   kind,
		Target: target,
		Digest: Digest(payload),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign ticket: %w", err)
	}
	return signed, exp, nil
}

// Verify 檢查憑證簽章、效期，以及是否對應同一動作與同一份內容。
func (i *Issuer) Verify(token, kind, target string, payload []byte) error {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	if !tkn.Valid {
		return ErrInvalidTicket
	}
	if claims.Kind != kind || claims.Target != target {
		return fmt.Errorf("%w: ticket issued for %s %q", ErrInvalidTicket, claims.Kind, claims.Target)
	}
	if claims.Digest != Digest(payload) {
		return fmt.Errorf("%w: payload changed since confirmation", ErrInvalidTicket)
	}
	return nil
}
