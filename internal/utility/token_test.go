// Package utility - Test vòng đời JWT: ký, parse, sai secret, hết hạn.
package utility

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kol_market/internal/common"
)

const testSecret = "test-secret"

func TestCreateAndParseToken(t *testing.T) {
	claims := TokenClaims{
		Role:  "brand",
		Name:  "Acme",
		Email: "brand@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "64f000000000000000000001",
		},
	}

	tokenString, err := CreateToken(testSecret, claims, time.Minute)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}

	parsed, err := ParseToken(testSecret, tokenString)
	if err != nil {
		t.Fatalf("ParseToken lỗi: %v", err)
	}
	if parsed.Subject != claims.Subject {
		t.Errorf("Subject = %q, muốn %q", parsed.Subject, claims.Subject)
	}
	if parsed.Role != "brand" {
		t.Errorf("Role = %q, muốn brand", parsed.Role)
	}
	if parsed.Purpose != "" {
		t.Errorf("Purpose = %q, muốn rỗng với access token", parsed.Purpose)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tokenString, err := CreateToken(testSecret, TokenClaims{Role: "admin"}, time.Minute)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}

	_, err = ParseToken("secret-khác", tokenString)
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("ParseToken với sai secret = %v, muốn ErrTokenInvalid", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	tokenString, err := CreateToken(testSecret, TokenClaims{Role: "brand"}, -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}

	_, err = ParseToken(testSecret, tokenString)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Errorf("ParseToken với token hết hạn = %v, muốn ErrTokenExpired", err)
	}
}

func TestParseTokenKeepsPurpose(t *testing.T) {
	tokenString, err := CreateToken(testSecret, TokenClaims{
		Role:    "influencer",
		Purpose: "password_reset",
	}, time.Minute)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}

	parsed, err := ParseToken(testSecret, tokenString)
	if err != nil {
		t.Fatalf("ParseToken lỗi: %v", err)
	}
	if parsed.Purpose != "password_reset" {
		t.Errorf("Purpose = %q, muốn password_reset", parsed.Purpose)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "không.phải.jwt"); !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("ParseToken với chuỗi rác = %v, muốn ErrTokenInvalid", err)
	}
}
