package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// 署名シークレット未設定（起動時に弾く）
	ErrNoSecret = errors.New("jwt secret is not configured")
	// 期限切れ
	ErrTokenExpired = errors.New("token expired")
	// パース失敗・署名不一致など
	ErrTokenMalformed = errors.New("invalid token")
)

// アクセストークンのclaims。
// subはユーザーIDの10進文字列。
type AccessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// subをint64に戻す
func (c *AccessClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Codecはアクセストークンの発行・検証とリフレッシュトークンの生成。
// 状態を持たない（secretと時計のみ）。DBには触らない。
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration, issuer string) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// アクセストークンの有効秒数（expiresInで返す）
func (c *Codec) AccessTTL() time.Duration {
	return c.ttl
}

// MintAccessは署名付きアクセストークンを発行する。
func (c *Codec) MintAccess(userID int64, email string, role string) (string, error) {
	now := c.now()

	claims := &AccessClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.issuer},
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// VerifyAccessは署名と期限を検証してclaimsを返す。
// 期限切れはErrTokenExpired、それ以外の失敗はErrTokenMalformed。
func (c *Codec) VerifyAccess(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	if t == nil || !t.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// NewRefreshTokenは64文字hexのランダム文字列を生成する。
// 一意性はDBのunique制約側で担保する。
func (c *Codec) NewRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
