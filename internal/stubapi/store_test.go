package stubapi

import (
	"testing"
	"time"
)

func TestStore_Week(t *testing.T) {
	s := NewStore()
	for _, d := range []string{"2026-10-20", "2026-10-16", "2026-10-23", "2026-10-15"} {
		if _, ok := s.AddBooking(Booking{Name: "x", Email: d + "@example.com", Date: d, TimeSlot: TimeSlots[0]}); !ok {
			t.Fatalf("booking %s rejected", d)
		}
	}
	start, _ := time.Parse(dateLayout, "2026-10-16")
	week := s.Week(start)
	if len(week) != 2 {
		t.Fatalf("want 2 bookings in week, got %d", len(week))
	}
	if week[0].Date != "2026-10-16" || week[1].Date != "2026-10-20" {
		t.Fatalf("unexpected order: %+v", week)
	}
}

func TestStore_BookingAddsRecipientOnce(t *testing.T) {
	s := NewStore()
	before := len(s.Recipients("", ""))
	s.AddBooking(Booking{Name: "New", Email: "new@example.com", Date: "2026-10-20", TimeSlot: TimeSlots[0]})
	s.AddBooking(Booking{Name: "New", Email: "NEW@example.com", Date: "2026-10-20", TimeSlot: TimeSlots[1]})
	if got := len(s.Recipients("", "")); got != before+1 {
		t.Fatalf("want %d recipients, got %d", before+1, got)
	}
}

func TestStore_LogsPastEnd(t *testing.T) {
	s := NewStore()
	s.Log("a", "1")
	if got := s.Logs(3, 10); len(got) != 0 {
		t.Fatalf("want empty page, got %d", len(got))
	}
}

func TestStore_LogsHugePage(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		s.Log("a", "x")
	}
	if got := s.Logs(4611686018427387904, 4); len(got) != 0 {
		t.Fatalf("want empty page, got %d", len(got))
	}
	if got := s.Logs(1, 0); len(got) != 0 {
		t.Fatalf("zero limit: want empty page, got %d", len(got))
	}
}

func TestStore_KPIs(t *testing.T) {
	s := NewStore()
	s.AddBooking(Booking{Name: "old", Email: "old@example.com", Date: "2026-10-01", TimeSlot: TimeSlots[0]})
	s.AddBooking(Booking{Name: "new", Email: "new@example.com", Date: "2026-10-20", TimeSlot: TimeSlots[0]})
	s.AddWaitlist(WaitlistEntry{Name: "w", Email: "w@example.com", PreferredDate: "2026-10-21"})

	k := s.KPIs("2026-10-16")
	if k.TotalBookings != 2 || k.UpcomingBookings != 1 || k.WaitlistCount != 1 || k.Recipients != 6 {
		t.Fatalf("unexpected kpis %+v", k)
	}
}
