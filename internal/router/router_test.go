package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blood-donor-network/internal/router"
)

type lifeSaverBody struct {
	ID                string   `json:"id"`
	SelectedDonorID   string   `json:"selectedDonorId"`
	BloodType         string   `json:"bloodType"`
	Hospital          string   `json:"hospital"`
	Notes             string   `json:"notes"`
	Status            string   `json:"status"`
	PreviousRequestID string   `json:"previousRequestId"`
	TriedDonorIDs     []string `json:"triedDonorIds"`
}

type updateBody struct {
	Request    lifeSaverBody  `json:"request"`
	Reassigned *lifeSaverBody `json:"reassigned"`
}

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(router.Options{Seed: true, MaxReassignments: 10})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_DeclineWithoutCandidate_ReturnsNullReassigned(t *testing.T) {
	ts := newServer(t)

	// donor-1 es el único O+ del seed
	lsID := createLifeSaver(t, ts.URL, "donor-1", "O+", "Urgent need")

	st, body := doReq(t, ts.URL, "PATCH", "/api/life-saver-requests/"+lsID, map[string]any{"status": "declined"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 decline, got %d body=%s", st, string(body))
	}
	var ub updateBody
	mustDecode(t, body, &ub)
	if ub.Request.Status != "declined" {
		t.Fatalf("expected declined, got %q", ub.Request.Status)
	}
	if ub.Reassigned != nil {
		t.Fatalf("expected no reassignment, got %+v", ub.Reassigned)
	}
	if !strings.Contains(string(body), `"reassigned":null`) {
		t.Fatalf("expected explicit null reassigned, body=%s", string(body))
	}

	items := listLifeSavers(t, ts.URL, "")
	if len(items) != 1 {
		t.Fatalf("expected 1 life saver request, got %d", len(items))
	}
}

func TestHTTP_DeclineChain_PicksBestScoreAndNeverRepeats(t *testing.T) {
	ts := newServer(t)

	d9 := createVerifiedDonor(t, ts.URL, "d9@example.com", "O+", "4.2", 10)
	d10 := createVerifiedDonor(t, ts.URL, "d10@example.com", "O+", "4.2", 15)

	lsID := createLifeSaver(t, ts.URL, "donor-1", "O+", "Urgent need")

	// 1) donor-1 declina: gana d10 (57 > 52)
	first := decline(t, ts.URL, lsID)
	if first.Reassigned == nil {
		t.Fatalf("expected reassignment after first decline")
	}
	fu := *first.Reassigned
	if fu.SelectedDonorID != d10 {
		t.Fatalf("expected %s, got %s", d10, fu.SelectedDonorID)
	}
	if fu.ID == lsID {
		t.Fatalf("follow-up must have a new id")
	}
	if fu.Status != "pending" {
		t.Fatalf("expected pending follow-up, got %q", fu.Status)
	}
	if fu.Notes != "Urgent need [Auto-assigned after previous donor declined]" {
		t.Fatalf("unexpected notes %q", fu.Notes)
	}
	if fu.PreviousRequestID != lsID {
		t.Fatalf("expected previousRequestId %s, got %s", lsID, fu.PreviousRequestID)
	}
	if len(fu.TriedDonorIDs) != 1 || fu.TriedDonorIDs[0] != "donor-1" {
		t.Fatalf("unexpected triedDonorIds %v", fu.TriedDonorIDs)
	}
	if fu.Hospital != "City Hospital" || fu.BloodType != "O+" {
		t.Fatalf("follow-up must copy the original, got %+v", fu)
	}

	// 2) d10 declina: queda d9, donor-1 ya fue intentado
	second := decline(t, ts.URL, fu.ID)
	if second.Reassigned == nil || second.Reassigned.SelectedDonorID != d9 {
		t.Fatalf("expected reassignment to %s, got %+v", d9, second.Reassigned)
	}

	// 3) d9 declina: no queda nadie
	third := decline(t, ts.URL, second.Reassigned.ID)
	if third.Reassigned != nil {
		t.Fatalf("expected chain to stop, got %+v", third.Reassigned)
	}

	// 4) decline repetido sobre una ya declined no reasigna
	again := decline(t, ts.URL, lsID)
	if again.Reassigned != nil {
		t.Fatalf("redundant decline must not reassign, got %+v", again.Reassigned)
	}

	items := listLifeSavers(t, ts.URL, "")
	if len(items) != 3 {
		t.Fatalf("expected 3 life saver requests, got %d", len(items))
	}

	pending := listLifeSavers(t, ts.URL, "?status=pending")
	if len(pending) != 0 {
		t.Fatalf("expected no pending requests, got %d", len(pending))
	}

	// la original no se tocó salvo el estado
	st, body := doReq(t, ts.URL, "GET", "/api/life-saver-requests/"+lsID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get, got %d", st)
	}
	var orig lifeSaverBody
	mustDecode(t, body, &orig)
	if orig.SelectedDonorID != "donor-1" || orig.Notes != "Urgent need" {
		t.Fatalf("original request mutated: %+v", orig)
	}
}

func TestHTTP_LifeSaver_Errors(t *testing.T) {
	ts := newServer(t)

	// blood type no coincide con el donante
	st, body := doReq(t, ts.URL, "POST", "/api/life-saver-requests", lifeSaverPayload("donor-1", "A+", ""))
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 mismatch, got %d body=%s", st, string(body))
	}
	var eb errorBody
	mustDecode(t, body, &eb)
	if eb.Message != "Invalid data" || len(eb.Errors) == 0 {
		t.Fatalf("unexpected error body %s", string(body))
	}

	// donante inexistente
	st, _ = doReq(t, ts.URL, "POST", "/api/life-saver-requests", lifeSaverPayload("donor-404", "O+", ""))
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown donor, got %d", st)
	}

	// 404
	st, body = doReq(t, ts.URL, "GET", "/api/life-saver-requests/nope", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
	mustDecode(t, body, &eb)
	if eb.Message != "Life saver request not found" {
		t.Fatalf("unexpected 404 message %q", eb.Message)
	}

	// 409: completed es terminal
	lsID := createLifeSaver(t, ts.URL, "donor-5", "O-", "")
	for _, s := range []string{"contacted", "completed"} {
		st, body = doReq(t, ts.URL, "PATCH", "/api/life-saver-requests/"+lsID, map[string]any{"status": s})
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d body=%s", s, st, string(body))
		}
	}
	st, _ = doReq(t, ts.URL, "PATCH", "/api/life-saver-requests/"+lsID, map[string]any{"status": "pending"})
	if st != http.StatusConflict {
		t.Fatalf("expected 409, got %d", st)
	}

	// status desconocido
	st, _ = doReq(t, ts.URL, "PATCH", "/api/life-saver-requests/"+lsID, map[string]any{"status": "lost"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown status, got %d", st)
	}
}

func TestHTTP_Donors_SearchAndVerify(t *testing.T) {
	ts := newServer(t)

	// "+" viaja URL-encoded
	st, body := doReq(t, ts.URL, "GET", "/api/donors/search/O%2B?lat=19.07&lng=72.87&distance=10", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
	}
	var found []map[string]any
	mustDecode(t, body, &found)
	if len(found) != 1 || found[0]["id"] != "donor-1" {
		t.Fatalf("expected only donor-1, got %s", string(body))
	}

	// donor-3 (B-) no está disponible
	st, body = doReq(t, ts.URL, "GET", "/api/donors/search/B-", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 search, got %d", st)
	}
	mustDecode(t, body, &found)
	if len(found) != 0 {
		t.Fatalf("expected no eligible B- donor, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/api/donors/search/XX", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid blood type, got %d", st)
	}

	// alta: arranca sin verificar y no aparece en la búsqueda
	st, body = doReq(t, ts.URL, "POST", "/api/donors", donorPayload("new@example.com", "AB-"))
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var created map[string]any
	mustDecode(t, body, &created)
	if created["isVerified"] != false || created["isAvailable"] != true || created["rating"] != "0" {
		t.Fatalf("unexpected defaults %s", string(body))
	}
	id := created["id"].(string)

	st, body = doReq(t, ts.URL, "GET", "/api/donors/search/AB-", nil)
	mustDecode(t, body, &found)
	if st != http.StatusOK || len(found) != 1 {
		t.Fatalf("expected only seeded AB- donor, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/donors/"+id+"/verify", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 verify, got %d", st)
	}
	_, body = doReq(t, ts.URL, "GET", "/api/donors/search/AB-", nil)
	mustDecode(t, body, &found)
	if len(found) != 2 {
		t.Fatalf("expected 2 AB- donors after verify, got %d", len(found))
	}

	// email duplicado
	st, _ = doReq(t, ts.URL, "POST", "/api/donors", donorPayload("NEW@example.com", "A+"))
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 duplicate email, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/api/donors/ghost", nil)
	if st != http.StatusNotFound || !strings.Contains(string(body), "Donor not found") {
		t.Fatalf("expected 404 donor, got %d body=%s", st, string(body))
	}
}

func TestHTTP_BloodRequestsAndResponses(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/api/blood-requests/active", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 active, got %d", st)
	}
	var active []map[string]any
	mustDecode(t, body, &active)
	if len(active) != 1 || active[0]["id"] != "req-1" {
		t.Fatalf("expected only req-1 active, got %s", string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/api/blood-requests", map[string]any{
		"patientName":   "Walk-in",
		"bloodType":     "B+",
		"unitsRequired": 1,
		"urgencyLevel":  "urgent",
		"hospital":      "City Hospital",
		"contactPerson": "Nurse Rao",
		"contactPhone":  "555",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 blood request, got %d body=%s", st, string(body))
	}
	var br map[string]any
	mustDecode(t, body, &br)
	if br["status"] != "active" {
		t.Fatalf("expected active, got %v", br["status"])
	}
	reqID := br["id"].(string)

	st, body = doReq(t, ts.URL, "POST", "/api/donor-responses", map[string]any{
		"requestId": reqID,
		"donorId":   "donor-7",
		"status":    "accepted",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 response, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/donor-responses", map[string]any{
		"requestId": "missing",
		"donorId":   "donor-7",
		"status":    "accepted",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown request, got %d", st)
	}

	_, body = doReq(t, ts.URL, "GET", "/api/donor-responses/request/req-1", nil)
	var rs []map[string]any
	mustDecode(t, body, &rs)
	if len(rs) != 2 {
		t.Fatalf("expected 2 responses for req-1, got %d", len(rs))
	}

	_, body = doReq(t, ts.URL, "GET", "/api/donor-responses/donor/donor-7", nil)
	mustDecode(t, body, &rs)
	if len(rs) != 1 {
		t.Fatalf("expected 1 response for donor-7, got %d", len(rs))
	}

	st, _ = doReq(t, ts.URL, "GET", "/api/blood-requests/ghost", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 blood request, got %d", st)
	}
}

func TestHTTP_Stats(t *testing.T) {
	ts := newServer(t)

	lsID := createLifeSaver(t, ts.URL, "donor-1", "O+", "")
	createVerifiedDonor(t, ts.URL, "d9@example.com", "O+", "4.2", 10)
	decline(t, ts.URL, lsID)

	st, body := doReq(t, ts.URL, "GET", "/api/stats", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 stats, got %d", st)
	}
	var s map[string]float64
	mustDecode(t, body, &s)

	want := map[string]float64{
		"totalDonors":              9,
		"verifiedDonors":           9,
		"availableDonors":          8,
		"totalRequests":            2,
		"activeRequests":           1,
		"totalDonations":           190,
		"lifeSaverRequests":        2,
		"pendingLifeSaverRequests": 1,
		"reassignedRequests":       1,
	}
	for k, v := range want {
		if s[k] != v {
			t.Fatalf("stats[%s]: expected %v, got %v (body=%s)", k, v, s[k], string(body))
		}
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected ok, got %d %s", st, string(body))
	}

	lsID := createLifeSaver(t, ts.URL, "donor-1", "O+", "")
	decline(t, ts.URL, lsID)

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), `lifesaver_reassignments_total{outcome="no_candidate"} 1`) {
		t.Fatalf("missing reassignment counter in metrics output")
	}
	if !strings.Contains(string(body), `lifesaver_http_requests_total`) {
		t.Fatalf("missing http counter in metrics output")
	}
}

func TestHTTP_LifeSaver_PatchEchoingFullBody(t *testing.T) {
	ts := newServer(t)
	lsID := createLifeSaver(t, ts.URL, "donor-5", "O-", "")

	st, body := doReq(t, ts.URL, "GET", "/api/life-saver-requests/"+lsID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get, got %d", st)
	}
	var full map[string]any
	mustDecode(t, body, &full)

	// el cuerpo del GET vuelve tal cual, con el estado cambiado
	full["status"] = "contacted"
	st, body = doReq(t, ts.URL, "PATCH", "/api/life-saver-requests/"+lsID, full)
	if st != http.StatusOK {
		t.Fatalf("expected 200 echo patch, got %d body=%s", st, string(body))
	}
	var ub updateBody
	mustDecode(t, body, &ub)
	if ub.Request.Status != "contacted" || ub.Request.SelectedDonorID != "donor-5" {
		t.Fatalf("unexpected patched request %+v", ub.Request)
	}

	// cambiar el donante no se permite
	full["selectedDonorId"] = "donor-1"
	st, body = doReq(t, ts.URL, "PATCH", "/api/life-saver-requests/"+lsID, full)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 immutable donor, got %d body=%s", st, string(body))
	}
	var eb errorBody
	mustDecode(t, body, &eb)
	if len(eb.Errors) != 1 || eb.Errors[0].Field != "selectedDonorId" || eb.Errors[0].Message != "immutable" {
		t.Fatalf("unexpected error body %s", string(body))
	}
}

func createLifeSaver(t *testing.T, baseURL, donorID, bloodType, notes string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/life-saver-requests", lifeSaverPayload(donorID, bloodType, notes))
	if st != http.StatusCreated {
		t.Fatalf("expected 201 life saver request, got %d body=%s", st, string(body))
	}
	var out lifeSaverBody
	mustDecode(t, body, &out)
	if out.ID == "" || out.Status != "pending" {
		t.Fatalf("unexpected created request %s", string(body))
	}
	return out.ID
}

func lifeSaverPayload(donorID, bloodType, notes string) map[string]any {
	return map[string]any{
		"requesterName":   "Asha Menon",
		"requesterEmail":  "asha@example.com",
		"requesterPhone":  "+91 90000 11111",
		"selectedDonorId": donorID,
		"bloodType":       bloodType,
		"unitsRequired":   2,
		"urgencyLevel":    "critical",
		"hospital":        "City Hospital",
		"requestReason":   "Accident",
		"notes":           notes,
	}
}

func createVerifiedDonor(t *testing.T, baseURL, email, bloodType, rating string, donations int) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/donors", donorPayload(email, bloodType))
	if st != http.StatusCreated {
		t.Fatalf("expected 201 donor, got %d body=%s", st, string(body))
	}
	var d map[string]any
	mustDecode(t, body, &d)
	id := d["id"].(string)

	st, body = doReq(t, baseURL, "PATCH", "/api/donors/"+id, map[string]any{
		"isVerified":     true,
		"rating":         rating,
		"totalDonations": donations,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch donor, got %d body=%s", st, string(body))
	}
	return id
}

func donorPayload(email, bloodType string) map[string]any {
	return map[string]any{
		"fullName":    "Test Donor",
		"email":       email,
		"phone":       "+91 90000 22222",
		"bloodType":   bloodType,
		"dateOfBirth": "1992-04-01",
		"gender":      "female",
		"weight":      60,
		"address":     "1 Test Street",
	}
}

func decline(t *testing.T, baseURL, id string) updateBody {
	t.Helper()

	st, body := doReq(t, baseURL, "PATCH", "/api/life-saver-requests/"+id, map[string]any{"status": "declined"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 decline, got %d body=%s", st, string(body))
	}
	var out updateBody
	mustDecode(t, body, &out)
	return out
}

func listLifeSavers(t *testing.T, baseURL, query string) []lifeSaverBody {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/api/life-saver-requests"+query, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
	}
	var out []lifeSaverBody
	mustDecode(t, body, &out)
	return out
}

func mustDecode(t *testing.T, body []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
