package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		actor   *Actor
		wantErr bool
	}{
		{"anonymous", nil, true},
		{"user", &Actor{Role: RoleUser}, true},
		{"empty role", &Actor{}, true},
		{"admin", &Actor{Role: RoleAdmin}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdmin(tt.actor)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errx.IsCode(err, CodeNotAuthorized) {
				t.Fatalf("unexpected error code: %v", err)
			}
		})
	}
}

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "nerdyjobs")
	token, err := svc.GenerateAccessToken(Actor{ID: "42", Email: "admin@example.com", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	actor, err := svc.Identify(token)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if actor.ID != "42" || actor.Email != "admin@example.com" || !actor.IsAdmin() {
		t.Fatalf("actor = %+v", actor)
	}
}

func TestJWTServiceRejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "nerdyjobs")
	token, _ := svc.GenerateAccessToken(Actor{ID: "1", Role: RoleAdmin})

	other := NewJWTService("other", time.Hour, "nerdyjobs")
	if _, err := other.Identify(token); !errx.IsCode(err, CodeInvalidToken) {
		t.Fatalf("wrong secret: err = %v", err)
	}

	expired := NewJWTService("secret", time.Hour, "nerdyjobs")
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := expired.Identify(token); !errx.IsCode(err, CodeInvalidToken) {
		t.Fatalf("expired: err = %v", err)
	}

	if _, err := svc.Identify("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

type stubPasswords struct{}

func (stubPasswords) HashPassword(p string) (string, error) { return p, nil }
func (stubPasswords) VerifyPassword(hash, p string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(p)) == nil
}

func newAuthApp(t *testing.T) (*fiber.App, *JWTService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	tokens := NewJWTService("secret", time.Hour, "nerdyjobs")
	h := NewAuthHandlers(tokens, stubPasswords{}, AdminConfig{Email: "admin@example.com", PasswordHash: string(hash)})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	h.RegisterRoutes(app)
	app.Get("/whoami", Identify(tokens), func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(string(actor.Role))
	})
	return app, tokens
}

func login(t *testing.T, app *fiber.App, body string) (int, LoginResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out LoginResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestLoginAndIdentify(t *testing.T) {
	app, _ := newAuthApp(t)

	status, out := login(t, app, `{"email":"Admin@Example.com","password":"pass"}`)
	if status != fiber.StatusOK || out.AccessToken == "" || out.TokenType != "Bearer" {
		t.Fatalf("status = %d, out = %+v", status, out)
	}

	whoami := func(header string) string {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return string(b)
	}

	if got := whoami("Bearer " + out.AccessToken); got != "admin" {
		t.Fatalf("with token: %s", got)
	}
	if got := whoami(""); got != "anonymous" {
		t.Fatalf("without token: %s", got)
	}
	if got := whoami("Bearer garbage"); got != "anonymous" {
		t.Fatalf("bad token: %s", got)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newAuthApp(t)
	for _, body := range []string{
		`{"email":"admin@example.com","password":"nope"}`,
		`{"email":"someone@example.com","password":"pass"}`,
		`{}`,
	} {
		if status, _ := login(t, app, body); status != fiber.StatusUnauthorized {
			t.Fatalf("%s: status = %d", body, status)
		}
	}
}
