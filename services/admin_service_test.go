package services_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-registration-system/handlers"
	"event-registration-system/models"
	"event-registration-system/services"

	"github.com/gofiber/fiber/v2"
)

func adminTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_USER_ID", "admin")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
}

func newAdminApp(regs *fakeRegistrants) *fiber.App {
	app := fiber.New()
	handlers.SetupAdminRoutes(app, services.NewAdminService(regs, newFakeCities()))
	return app
}

func adminLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, raw := testRequest(t, app, "POST", "/api/admin/login", map[string]string{
		"user_id": "admin", "password": "s3cret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", resp.StatusCode, raw)
	}
	token, _ := decodeJSON(t, raw)["token"].(string)
	if token == "" {
		t.Fatal("expected a session token")
	}
	return token
}

func authedRequest(t *testing.T, app *fiber.App, token, method, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, raw
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	adminTestEnv(t)
	app := newAdminApp(newFakeRegistrants())

	resp, _ := testRequest(t, app, "POST", "/api/admin/login", map[string]string{
		"user_id": "admin", "password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	adminTestEnv(t)
	app := newAdminApp(newFakeRegistrants())

	resp, _ := testRequest(t, app, "GET", "/api/admin/registrants", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/admin/registrants", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r2, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if r2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a bogus token, got %d", r2.StatusCode)
	}
}

func TestAdminListWithSession(t *testing.T) {
	adminTestEnv(t)
	regs := newFakeRegistrants(
		&models.Registrant{UID: "u1", Name: "A", City: "Chennai"},
		&models.Registrant{UID: "u2", Name: "B", City: "Mumbai"},
	)
	app := newAdminApp(regs)
	token := adminLogin(t, app)

	resp, raw := authedRequest(t, app, token, "GET", "/api/admin/registrants?per_page=10")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}
	body := decodeJSON(t, raw)
	if body["total"] != float64(2) {
		t.Fatalf("expected total 2, got %v", body["total"])
	}
}

func TestAdminStatsCountsConfirmedRSVPs(t *testing.T) {
	adminTestEnv(t)
	regs := newFakeRegistrants(
		&models.Registrant{UID: "u1", Name: "A", City: "Chennai", RSVPStatus: models.RSVPConfirmed},
		&models.Registrant{UID: "u2", Name: "B", City: "Chennai", RSVPStatus: models.RSVPSent},
		// Legacy boolean value must still count as confirmed.
		&models.Registrant{UID: "u3", Name: "C", City: "Mumbai", RSVPStatus: "true"},
	)
	app := newAdminApp(regs)
	token := adminLogin(t, app)

	resp, raw := authedRequest(t, app, token, "GET", "/api/admin/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeJSON(t, raw)
	stats := body["stats"].(map[string]interface{})
	rsvps := stats["totalRSVPs"].(map[string]interface{})
	if rsvps["count"] != float64(2) {
		t.Fatalf("expected 2 confirmed RSVPs, got %v", rsvps["count"])
	}
	users := stats["totalUsers"].(map[string]interface{})
	if users["count"] != float64(3) {
		t.Fatalf("expected 3 registrants, got %v", users["count"])
	}
}

func TestAdminBulkStatusRejectsUnknownField(t *testing.T) {
	adminTestEnv(t)
	app := newAdminApp(newFakeRegistrants(&models.Registrant{UID: "u1", Name: "A"}))
	token := adminLogin(t, app)

	for _, field := range []string{"uid", "rsvp_status", "name", "is_attended_event"} {
		req := httptest.NewRequest("POST", "/api/admin/bulk-status",
			strings.NewReader(`{"uids":["u1"],"field":"`+field+`","value":true}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("field %q: expected 400, got %d", field, resp.StatusCode)
		}
	}
}

func TestAdminBulkStatusUpdatesFlags(t *testing.T) {
	adminTestEnv(t)
	regs := newFakeRegistrants(
		&models.Registrant{UID: "u1", Name: "A"},
		&models.Registrant{UID: "u2", Name: "B"},
	)
	app := newAdminApp(regs)
	token := adminLogin(t, app)

	req := httptest.NewRequest("POST", "/api/admin/bulk-status",
		strings.NewReader(`{"uids":["u1","u2","ghost"],"field":"whatsapp_status","value":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !regs.byUID["u1"].WhatsappStatus || !regs.byUID["u2"].WhatsappStatus {
		t.Fatal("expected both existing registrants flagged")
	}
}

func TestAdminExportCSV(t *testing.T) {
	adminTestEnv(t)
	regs := newFakeRegistrants(&models.Registrant{UID: "u1", Name: "Jane", City: "Chennai", Email: "jane@x.com"})
	app := newAdminApp(regs)
	token := adminLogin(t, app)

	resp, raw := authedRequest(t, app, token, "GET", "/api/admin/export")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Fatalf("expected CSV content type, got %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}
	out := string(raw)
	if !strings.Contains(out, "Name,UID,Email") {
		t.Fatal("expected the CSV header row")
	}
	if !strings.Contains(out, "Jane,u1,jane@x.com") {
		t.Fatalf("expected the registrant row, got: %s", out)
	}
}
