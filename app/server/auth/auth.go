package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type TokenType string

const (
	TokenTypeAccess       TokenType = "access"
	TokenTypeConfirmation TokenType = "confirmation"
)

func AccessTokenExpireMinutes() int  { return 30 }
func ConfirmTokenExpireMinutes() int { return 1440 }

// TokenError is returned for any token that can't be used to identify a user.
// Msg is safe to show to clients.
type TokenError struct {
	Msg string
	Err error
}

func (e *TokenError) Error() string { return e.Msg }
func (e *TokenError) Unwrap() error { return e.Err }

type Issuer struct {
	secret []byte
	method jwt.SigningMethod

	accessTTL  time.Duration
	confirmTTL time.Duration
}

func NewIssuer(secret, algorithm string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("secret key is required")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %s is not an HMAC algorithm", algorithm)
	}

	return &Issuer{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  time.Duration(AccessTokenExpireMinutes()) * time.Minute,
		confirmTTL: time.Duration(ConfirmTokenExpireMinutes()) * time.Minute,
	}, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %v", err)
	}
	return string(hashed), nil
}

func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (i *Issuer) CreateAccessToken(email string) (string, error) {
	zap.L().Debug("creating access token", zap.String("email", email))
	return i.createToken(email, TokenTypeAccess, i.accessTTL)
}

func (i *Issuer) CreateConfirmationToken(email string) (string, error) {
	zap.L().Debug("creating confirmation token", zap.String("email", email))
	return i.createToken(email, TokenTypeConfirmation, i.confirmTTL)
}

func (i *Issuer) createToken(email string, tokenType TokenType, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"exp":  jwt.NewNumericDate(time.Now().Add(ttl)),
		"type": string(tokenType),
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %v", err)
	}
	return signed, nil
}

// SubjectForTokenType validates a token and returns its subject, provided
// the token's type claim matches tokenType.
func (i *Issuer) SubjectForTokenType(token string, tokenType TokenType) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{i.method.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", &TokenError{Msg: "Token has expired", Err: err}
		}
		return "", &TokenError{Msg: "Invalid Token", Err: err}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", &TokenError{Msg: "Invalid Token"}
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", &TokenError{Msg: "Token is missing 'sub' field"}
	}

	got, _ := claims["type"].(string)
	if got != string(tokenType) {
		return "", &TokenError{Msg: fmt.Sprintf("Token type %s does not match %s", got, tokenType)}
	}

	return sub, nil
}
