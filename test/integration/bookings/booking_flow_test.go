package integrationtests

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"roost/pkg/model"
	"roost/test/common"
)

// The suite drives both services over HTTP against a shared database.
// Set TEST_BOOKINGS_URL and TEST_PROPERTIES_URL to run it, e.g.
//
//	TEST_BOOKINGS_URL=http://localhost:8080 \
//	TEST_PROPERTIES_URL=http://localhost:8081 go test ./test/...
const (
	guestID      = "507f1f77bcf86cd799439021"
	otherGuestID = "507f1f77bcf86cd799439022"
	hostID       = "507f1f77bcf86cd799439023"
	strangerID   = "507f1f77bcf86cd799439024"
)

func setupClients(t *testing.T) (bookings, properties *common.Client) {
	t.Helper()
	bookings = common.ClientFromEnv(t, "TEST_BOOKINGS_URL")
	properties = common.ClientFromEnv(t, "TEST_PROPERTIES_URL")
	bookings.WaitForHealthy(t, 30*time.Second)
	properties.WaitForHealthy(t, 30*time.Second)
	return bookings, properties
}

func propertyPayload(title string, instantBook, approveFirstFive bool) map[string]any {
	return map[string]any{
		"host_id": hostID,
		"title":   title,
		"location": map[string]any{
			"address": "12 Harbour Lane",
			"city":    "Lisbon",
			"country": "Portugal",
		},
		"pricing": map[string]any{
			"pricing_type":  "NIGHTLY",
			"weekday_price": 100,
		},
		"booking_settings": map[string]any{
			"instant_book":       instantBook,
			"approve_first_five": approveFirstFive,
		},
	}
}

func bookingPayload(propertyID string, guest string, checkIn, checkOut time.Time) map[string]any {
	return map[string]any{
		"property_id": propertyID,
		"guest_id":    guest,
		"check_in":    checkIn.Format(time.RFC3339),
		"check_out":   checkOut.Format(time.RFC3339),
		"guests":      2,
	}
}

func createProperty(t *testing.T, properties *common.Client, payload map[string]any) *model.Property {
	t.Helper()
	resp := properties.POST(t, "/api/v1/properties", payload)
	common.AssertStatusCode(t, resp, 201)
	return decodeProperty(t, resp)
}

func decodeProperty(t *testing.T, resp *common.Response) *model.Property {
	t.Helper()
	var result struct {
		Data model.Property `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("failed to decode property: %v", err)
	}
	return &result.Data
}

func decodeBooking(t *testing.T, resp *common.Response) *model.Booking {
	t.Helper()
	var result struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("failed to decode booking: %v", err)
	}
	return &result.Data
}

func TestBookingFlow_HostReview(t *testing.T) {
	bookings, properties := setupClients(t)

	property := createProperty(t, properties, propertyPayload("Host Review Loft", false, false))

	checkIn := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	resp := bookings.POST(t, "/api/v1/bookings", bookingPayload(property.ID, guestID, checkIn, checkIn.Add(72*time.Hour)))
	common.AssertStatusCode(t, resp, 201)
	created := decodeBooking(t, resp)

	if created.Status != model.StatusPending {
		t.Errorf("expected pending without instant book, got %s", created.Status)
	}
	if created.TotalNights == nil || *created.TotalNights != 3 {
		t.Errorf("expected 3 nights, got %v", created.TotalNights)
	}
	if created.TotalPrice != 300 {
		t.Errorf("expected total 300, got %v", created.TotalPrice)
	}

	// A stranger cannot decide the booking.
	confirm := map[string]any{"status": "confirmed"}
	forbidden := bookings.PATCHWithHeaders(t,
		fmt.Sprintf("/api/v1/bookings/id/%s/status", created.ID),
		confirm, map[string]string{"X-Host-ID": strangerID})
	common.AssertStatusCode(t, forbidden, 403)

	confirmed := bookings.PATCHWithHeaders(t,
		fmt.Sprintf("/api/v1/bookings/id/%s/status", created.ID),
		confirm, map[string]string{"X-Host-ID": hostID})
	common.AssertStatusCode(t, confirmed, 200)
	if decodeBooking(t, confirmed).Status != model.StatusConfirmed {
		t.Error("expected booking confirmed after host decision")
	}

	// Decided bookings cannot be decided again.
	again := bookings.PATCHWithHeaders(t,
		fmt.Sprintf("/api/v1/bookings/id/%s/status", created.ID),
		map[string]any{"status": "declined"}, map[string]string{"X-Host-ID": hostID})
	common.AssertStatusCode(t, again, 409)
}

func TestBookingFlow_OverlapConflict(t *testing.T) {
	bookings, properties := setupClients(t)

	property := createProperty(t, properties, propertyPayload("Overlap Loft", true, false))

	checkIn := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	checkOut := checkIn.Add(48 * time.Hour)

	first := bookings.POST(t, "/api/v1/bookings", bookingPayload(property.ID, guestID, checkIn, checkOut))
	common.AssertStatusCode(t, first, 201)

	overlapping := bookings.POST(t, "/api/v1/bookings",
		bookingPayload(property.ID, otherGuestID, checkIn.Add(24*time.Hour), checkOut.Add(24*time.Hour)))
	common.AssertStatusCode(t, overlapping, 409)

	// Back-to-back is not an overlap: checkout day equals the next check-in.
	adjacent := bookings.POST(t, "/api/v1/bookings",
		bookingPayload(property.ID, otherGuestID, checkOut, checkOut.Add(48*time.Hour)))
	common.AssertStatusCode(t, adjacent, 201)
}

func TestBookingFlow_FirstFiveQuota(t *testing.T) {
	bookings, properties := setupClients(t)

	property := createProperty(t, properties, propertyPayload("First Five Loft", true, true))

	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	statuses := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		checkIn := base.Add(time.Duration(i) * 72 * time.Hour)
		resp := bookings.POST(t, "/api/v1/bookings",
			bookingPayload(property.ID, guestID, checkIn, checkIn.Add(48*time.Hour)))
		common.AssertStatusCode(t, resp, 201)
		statuses = append(statuses, decodeBooking(t, resp).Status)
	}

	for i := 0; i < 5; i++ {
		if statuses[i] != model.StatusConfirmed {
			t.Errorf("booking %d: expected auto-confirmed within quota, got %s", i+1, statuses[i])
		}
	}
	if statuses[5] != model.StatusPending {
		t.Errorf("booking 6: expected pending after quota, got %s", statuses[5])
	}
}

// postBookingRetryingLock posts a booking, retrying while the per-property
// admission lock is held by a concurrent request. Any other outcome is
// returned as-is.
func postBookingRetryingLock(t *testing.T, bookings *common.Client, payload map[string]any) *common.Response {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	for {
		resp := bookings.POST(t, "/api/v1/bookings", payload)
		if resp.StatusCode != 409 || !strings.Contains(string(resp.Body), "currently being booked") {
			return resp
		}
		if time.Now().After(deadline) {
			t.Fatalf("admission lock never released: %s", resp.Body)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestBookingFlow_ConcurrentAdmission(t *testing.T) {
	bookings, properties := setupClients(t)

	property := createProperty(t, properties, propertyPayload("Concurrent Loft", true, true))

	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	// A burst of non-overlapping requests on one property: every one must
	// land, and the auto-approval quota must hold under the contention.
	const attempts = 8
	statuses := make([]string, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			checkIn := base.Add(time.Duration(i) * 72 * time.Hour)
			resp := postBookingRetryingLock(t, bookings,
				bookingPayload(property.ID, guestID, checkIn, checkIn.Add(48*time.Hour)))
			if resp.StatusCode != 201 {
				t.Errorf("booking %d: expected 201, got %d (%s)", i, resp.StatusCode, resp.Body)
				return
			}
			statuses[i] = decodeBooking(t, resp).Status
		}(i)
	}
	wg.Wait()

	confirmed := 0
	for _, status := range statuses {
		if status == model.StatusConfirmed {
			confirmed++
		}
	}
	if confirmed != 5 {
		t.Errorf("expected exactly 5 auto-confirmed bookings, got %d (%v)", confirmed, statuses)
	}

	// Two guests race for the same interval: exactly one wins.
	contested := base.Add(attempts * 72 * time.Hour)
	guests := []string{guestID, otherGuestID}
	results := make([]*common.Response, len(guests))
	for i := range guests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = postBookingRetryingLock(t, bookings,
				bookingPayload(property.ID, guests[i], contested, contested.Add(48*time.Hour)))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, resp := range results {
		switch resp.StatusCode {
		case 201:
			winners++
		case 409:
			common.AssertContains(t, resp, "conflict")
		default:
			t.Errorf("unexpected status %d: %s", resp.StatusCode, resp.Body)
		}
	}
	if winners != 1 {
		t.Errorf("expected exactly one winner for the contested interval, got %d", winners)
	}

	// Retrying the lost interval is still rejected once the winner holds it.
	retry := bookings.POST(t, "/api/v1/bookings",
		bookingPayload(property.ID, otherGuestID, contested, contested.Add(48*time.Hour)))
	common.AssertStatusCode(t, retry, 409)
	common.AssertContains(t, retry, "conflict")
}

func TestBookingFlow_RejectsBadInput(t *testing.T) {
	bookings, properties := setupClients(t)

	property := createProperty(t, properties, propertyPayload("Validation Loft", true, false))

	checkIn := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	malformed := bookingPayload(property.ID, guestID, checkIn, checkIn.Add(48*time.Hour))
	malformed["check_in"] = "tomorrow"
	resp := bookings.POST(t, "/api/v1/bookings", malformed)
	common.AssertStatusCode(t, resp, 400)

	inverted := bookings.POST(t, "/api/v1/bookings",
		bookingPayload(property.ID, guestID, checkIn.Add(48*time.Hour), checkIn))
	common.AssertStatusCode(t, inverted, 400)

	pastIn := time.Now().Add(-96 * time.Hour)
	past := bookings.POST(t, "/api/v1/bookings",
		bookingPayload(property.ID, guestID, pastIn, pastIn.Add(48*time.Hour)))
	common.AssertStatusCode(t, past, 400)
}

func TestBookingFlow_InactivePropertyHidden(t *testing.T) {
	bookings, properties := setupClients(t)

	property := createProperty(t, properties, propertyPayload("Delisted Loft", true, false))

	delist := properties.PATCHWithHeaders(t,
		fmt.Sprintf("/api/v1/properties/id/%s/active", property.ID),
		map[string]any{"active": false}, map[string]string{"X-Host-ID": hostID})
	common.AssertStatusCode(t, delist, 204)

	checkIn := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	resp := bookings.POST(t, "/api/v1/bookings",
		bookingPayload(property.ID, guestID, checkIn, checkIn.Add(48*time.Hour)))
	common.AssertStatusCode(t, resp, 404)
}
