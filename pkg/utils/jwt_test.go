package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/habalhub/habal-backend/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Email: "rider@example.com"}
	user.ID = 42
	roles := models.RoleSet{models.RoleRider, models.RoleDriver}

	tokenString, err := GenerateToken(user, roles)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !token.Valid {
		t.Fatal("token reported invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", token.Claims)
	}
	if claims["email"] != "rider@example.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if id, _ := claims["id"].(float64); uint(id) != 42 {
		t.Errorf("id claim = %v, want 42", claims["id"])
	}

	rawRoles, _ := claims["roles"].([]interface{})
	if len(rawRoles) != 2 {
		t.Fatalf("roles claim = %v, want 2 entries", claims["roles"])
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")

	user := &models.User{Email: "rider@example.com"}
	user.ID = 7
	tokenString, err := GenerateToken(user, models.RoleSet{models.RoleRider})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := ValidateToken(tokenString); err == nil {
		t.Fatal("expected validation failure with different secret")
	}
}
