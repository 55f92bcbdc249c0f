package services_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event-registration-system/models"
	"event-registration-system/store"

	"github.com/gofiber/fiber/v2"
)

// fakeRegistrants is a map-backed store.Registrants used by the handler
// tests.
type fakeRegistrants struct {
	byUID map[string]*models.Registrant

	getErr    error
	updateErr error
	bulkErr   error

	updateCalls []updateCall
}

type updateCall struct {
	uid    string
	fields map[string]interface{}
}

func newFakeRegistrants(regs ...*models.Registrant) *fakeRegistrants {
	f := &fakeRegistrants{byUID: map[string]*models.Registrant{}}
	for _, r := range regs {
		f.byUID[r.UID] = r
	}
	return f
}

func (f *fakeRegistrants) Create(r *models.Registrant) error {
	if _, exists := f.byUID[r.UID]; exists {
		return fmt.Errorf("duplicate uid %s", r.UID)
	}
	r.CreatedAt = time.Now()
	f.byUID[r.UID] = r
	return nil
}

func (f *fakeRegistrants) GetByUID(uid string) (*models.Registrant, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.byUID[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	cp.RSVPStatus = models.NormalizeRSVPStatus(cp.RSVPStatus)
	return &cp, nil
}

func (f *fakeRegistrants) UpdateFields(uid string, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.byUID[uid]
	if !ok {
		return store.ErrNotFound
	}
	f.updateCalls = append(f.updateCalls, updateCall{uid: uid, fields: fields})
	applyFields(r, fields)
	return nil
}

func (f *fakeRegistrants) BulkUpdateFields(uids []string, fields map[string]interface{}) (int64, error) {
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	var n int64
	for _, uid := range uids {
		if r, ok := f.byUID[uid]; ok {
			applyFields(r, fields)
			n++
		}
	}
	return n, nil
}

func (f *fakeRegistrants) List(filter store.RegistrantFilter) ([]models.Registrant, int64, error) {
	var rows []models.Registrant
	for _, r := range f.byUID {
		cp := *r
		cp.RSVPStatus = models.NormalizeRSVPStatus(cp.RSVPStatus)
		rows = append(rows, cp)
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeRegistrants) CountByCity(city string) (int64, error) {
	var n int64
	for _, r := range f.byUID {
		if r.City == city {
			n++
		}
	}
	return n, nil
}

func (f *fakeRegistrants) PendingTickets(olderThan time.Time) ([]models.Registrant, error) {
	return nil, nil
}

func applyFields(r *models.Registrant, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "email_status":
			r.EmailStatus = v.(bool)
		case "resend_status":
			r.ResendStatus = v.(bool)
		case "whatsapp_status":
			r.WhatsappStatus = v.(bool)
		case "rsvp_whatsapp":
			r.RSVPWhatsapp = v.(bool)
		case "rsvp_status":
			r.RSVPStatus = v.(string)
		case "is_attended_event":
			r.IsAttendedEvent = v.(bool)
		case "is_game_played":
			r.IsGamePlayed = v.(bool)
		case "image_link":
			r.ImageLink = v.(string)
		case "ticket_step":
			r.TicketStep = v.(string)
		}
	}
}

type fakeCities struct {
	byName map[string]*models.CityConfig
}

func newFakeCities(cities ...*models.CityConfig) *fakeCities {
	f := &fakeCities{byName: map[string]*models.CityConfig{}}
	for _, c := range cities {
		f.byName[c.CityName] = c
	}
	return f
}

func (f *fakeCities) GetByName(name string) (*models.CityConfig, error) {
	for _, c := range f.byName {
		if strings.EqualFold(c.CityName, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCities) ListLive() ([]models.CityConfig, error) {
	var out []models.CityConfig
	for _, c := range f.byName {
		if c.IsLive {
			out = append(out, *c)
		}
	}
	return out, nil
}

// testRequest runs one request against a fiber app and returns the
// response plus its body.
func testRequest(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
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

func decodeJSON(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response %q: %v", raw, err)
	}
	return out
}

// fakeMailer records every send and can be told to fail.
type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
