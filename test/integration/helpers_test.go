package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"inkfeed-be/internal/bootstrap"
	"inkfeed-be/internal/config"
	"inkfeed-be/internal/model"
	"inkfeed-be/internal/server"
	"inkfeed-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// newTestApp boots the full stack against the database from
// DB_CONNECTION_STRING and skips the test when it is not set.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "default_secret")
	}

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	if err := container.NotificationService.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start notification recorder: %v", err)
	}

	srv := server.New(cfg, container)
	return srv.GetApp(), db
}

func mintToken(t *testing.T, userId uuid.UUID) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func strPtr(s string) *string {
	return &s
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) model.User {
	t.Helper()

	u := model.User{
		Id:       uuid.New(),
		Username: "it-" + uuid.New().String()[:8],
		Nickname: strPtr(nickname),
		Email:    strPtr("it-" + uuid.New().String()[:8] + "@example.com"),
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	t.Cleanup(func() {
		db.Where("user_id = ?", u.Id).Delete(&model.Notification{})
		db.Delete(&model.User{}, u.Id)
	})
	return u
}

// api fires one request through the fiber app. A non-empty token goes out
// as a bearer header; a non-nil body is sent as JSON.
func api(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}
