package services_test

import (
	"net/http"
	"testing"

	"event-registration-system/handlers"
	"event-registration-system/models"
	"event-registration-system/services"

	"github.com/gofiber/fiber/v2"
)

func newCheckinApp(regs *fakeRegistrants) *fiber.App {
	app := fiber.New()
	handlers.SetupCheckinRoutes(app, services.NewCheckinService(regs))
	return app
}

func TestCheckinMarksAttendance(t *testing.T) {
	regs := newFakeRegistrants(&models.Registrant{UID: "abc123", Name: "Jane Doe"})
	app := newCheckinApp(regs)

	resp, raw := testRequest(t, app, "POST", "/api/checkin", map[string]string{"uid": "abc123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeJSON(t, raw)
	if body["name"] != "Jane Doe" {
		t.Fatalf("expected registrant name in response, got %v", body["name"])
	}
	if !regs.byUID["abc123"].IsAttendedEvent {
		t.Fatal("expected is_attended_event to be true")
	}
}

func TestCheckinRescanIsIdempotent(t *testing.T) {
	regs := newFakeRegistrants(&models.Registrant{UID: "abc123", Name: "Jane", IsAttendedEvent: true})
	app := newCheckinApp(regs)

	resp, raw := testRequest(t, app, "POST", "/api/checkin", map[string]string{"uid": "abc123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-scan should succeed, got %d", resp.StatusCode)
	}
	if decodeJSON(t, raw)["success"] != true {
		t.Fatal("re-scan of an attended code re-confirms success")
	}
	// Already attended: no redundant write.
	if len(regs.updateCalls) != 0 {
		t.Fatalf("expected no update for an already-attended code, got %d", len(regs.updateCalls))
	}
}

func TestCheckinUnknownCode(t *testing.T) {
	app := newCheckinApp(newFakeRegistrants())

	resp, _ := testRequest(t, app, "POST", "/api/checkin", map[string]string{"uid": "ghost"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCheckinMissingUID(t *testing.T) {
	app := newCheckinApp(newFakeRegistrants())

	resp, _ := testRequest(t, app, "POST", "/api/checkin", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
