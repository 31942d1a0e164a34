package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"classtrack_go/config"
	"classtrack_go/models"
	"classtrack_go/routes"
	"classtrack_go/services/authprovider"
	"classtrack_go/store"
	"classtrack_go/utils"
)

// fakeExchanger stands in for the external auth provider. Keys are the
// session ids it accepts.
type fakeExchanger struct {
	sessions map[string]*authprovider.SessionData
}

func (f *fakeExchanger) Exchange(_ context.Context, sessionID string) (*authprovider.SessionData, error) {
	data, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: auth provider returned 401", utils.ErrUpstreamAuth)
	}
	return data, nil
}

func newTestApp(st *store.Store, provider authprovider.Exchanger) *fiber.App {
	config.AppConfig = &config.Config{SessionTTL: 7 * 24 * time.Hour}
	app := fiber.New()
	routes.SetupRoutes(app, st, provider, nil, 0)
	return app
}

// seedUserWithSession creates a user with an active session and returns
// the bearer token to act as them.
func seedUserWithSession(t *testing.T, st *store.Store, id, role string) string {
	t.Helper()
	ctx := context.Background()
	user := &models.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "Test " + id,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.Users.InsertOne(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token := "token-" + id
	sess := &models.Session{
		ID:           "sess-" + id,
		UserID:       id,
		SessionToken: token,
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
		CreatedAt:    time.Now().UTC(),
	}
	if err := st.Sessions.InsertOne(ctx, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
