package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agriance/contractgen/config"
	"github.com/agriance/contractgen/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testAuth = &config.AuthConfig{
	JWTSecret:        "contract-signing-secret",
	TokenExpireHours: 8,
}

// signClaims signs arbitrary claims with method and secret.
func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func buyerClaims(mutate func(*Claims)) Claims {
	now := time.Now()
	c := Claims{
		Username: "suresh",
		Tenant:   "agritech-foods",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "suresh",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func TestGenerateToken(t *testing.T) {
	token, expiresAt, err := GenerateToken("suresh", "agritech-foods", testAuth)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	want := time.Now().Add(8 * time.Hour)
	if expiresAt.Before(want.Add(-time.Minute)) || expiresAt.After(want.Add(time.Minute)) {
		t.Errorf("Expiry %v not within a minute of %v", expiresAt, want)
	}

	claims, err := ParseToken(token, testAuth)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Username != "suresh" || claims.Tenant != "agritech-foods" {
		t.Errorf("Unexpected identity %s/%s", claims.Username, claims.Tenant)
	}
	if claims.Issuer != TokenIssuer || claims.Subject != "suresh" {
		t.Errorf("Unexpected registered claims iss=%s sub=%s", claims.Issuer, claims.Subject)
	}
}

func TestAuthMiddleware(t *testing.T) {
	valid := signClaims(t, jwt.SigningMethodHS256, []byte(testAuth.JWTSecret), buyerClaims(nil))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"no scheme", valid, http.StatusUnauthorized},
		{"basic scheme", "Basic " + valid, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized},
		{
			"wrong secret",
			"Bearer " + signClaims(t, jwt.SigningMethodHS256, []byte("other-secret"), buyerClaims(nil)),
			http.StatusUnauthorized,
		},
		{
			"expired",
			"Bearer " + signClaims(t, jwt.SigningMethodHS256, []byte(testAuth.JWTSecret), buyerClaims(func(c *Claims) {
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
			})),
			http.StatusUnauthorized,
		},
		{
			"no expiry",
			"Bearer " + signClaims(t, jwt.SigningMethodHS256, []byte(testAuth.JWTSecret), buyerClaims(func(c *Claims) {
				c.ExpiresAt = nil
			})),
			http.StatusUnauthorized,
		},
		{
			"foreign issuer",
			"Bearer " + signClaims(t, jwt.SigningMethodHS256, []byte(testAuth.JWTSecret), buyerClaims(func(c *Claims) {
				c.Issuer = "someone-else"
			})),
			http.StatusUnauthorized,
		},
		{
			"other hmac method",
			"Bearer " + signClaims(t, jwt.SigningMethodHS512, []byte(testAuth.JWTSecret), buyerClaims(nil)),
			http.StatusUnauthorized,
		},
		{
			"unsigned",
			"Bearer " + signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, buyerClaims(nil)),
			http.StatusUnauthorized,
		},
	}

	router := gin.New()
	router.Use(AuthMiddleware(testAuth))
	router.GET("/api/contracts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"contracts": []string{}})
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/contracts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestAuthMiddlewareIdentity(t *testing.T) {
	token, _, err := GenerateToken("ramesh", "vadodara-coop", testAuth)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var user, tenant string
	var ctxUser, ctxTenant any
	router := gin.New()
	router.Use(AuthMiddleware(testAuth))
	router.POST("/api/contracts", func(c *gin.Context) {
		user, tenant = GetUsername(c), GetTenant(c)
		ctxUser = c.Request.Context().Value(logger.UsernameKey)
		ctxTenant = c.Request.Context().Value(logger.TenantKey)
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest("POST", "/api/contracts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	if user != "ramesh" || tenant != "vadodara-coop" {
		t.Errorf("Unexpected gin identity %s/%s", user, tenant)
	}
	if ctxUser != "ramesh" || ctxTenant != "vadodara-coop" {
		t.Errorf("Unexpected request context identity %v/%v", ctxUser, ctxTenant)
	}
}

func TestContextAccessorsUnset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetUsername(c) != "" || GetTenant(c) != "" {
		t.Error("Expected empty identity before authentication")
	}

	c.Set(ContextTenant, 42)
	if GetTenant(c) != "" {
		t.Error("Expected a non-string tenant to read as empty")
	}
}
