package auth

import (
	"testing"
	"time"

	"ThesisTrack/internal/authz"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "hunter2!" {
		t.Fatal("password stored in clear")
	}
	if !CheckPasswordHash("hunter2!", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("uid-1", "Ada", "ada@example.edu", authz.RoleTeacher, time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UID != "uid-1" || claims.Email != "ada@example.edu" || claims.Role != authz.RoleTeacher {
		t.Fatalf("claims lost in round trip: %+v", claims)
	}
}

func TestExpiredJWTRejected(t *testing.T) {
	token, err := GenerateJWT("uid-1", "Ada", "ada@example.edu", authz.RoleTeacher, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestJWTWithoutExpiryValidates(t *testing.T) {
	claims := &JWTClaims{UID: "uid-1", Name: "Ada", Email: "ada@example.edu", Role: authz.RoleTeacher}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(GetJWTKey())
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	got, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("token without exp claim rejected: %v", err)
	}
	if got.UID != "uid-1" {
		t.Fatalf("claims lost: %+v", got)
	}
}

func TestGarbageJWTRejected(t *testing.T) {
	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
