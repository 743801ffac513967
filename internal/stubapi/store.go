package stubapi

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type Booking struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	Zipcode           string `json:"zipcode,omitempty"`
	Date              string `json:"date"`
	TimeSlot          string `json:"time_slot"`
	ContactPreference string `json:"contact_preference,omitempty"`
}

type WaitlistEntry struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time,omitempty"`
}

type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	City  string `json:"city,omitempty"`
}

type ActivityLog struct {
	ID        int       `json:"id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeSlots are the bookable slots for every date.
var TimeSlots = []string{
	"12:00 PM - 2:00 PM",
	"3:00 PM - 5:00 PM",
	"6:00 PM - 8:00 PM",
	"9:00 PM - 11:00 PM",
}

// Store is the in-memory state behind the stub API.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	bookings   []Booking
	waitlist   []WaitlistEntry
	recipients []Recipient
	logs       []ActivityLog
}

func NewStore() *Store {
	s := &Store{now: func() time.Time { return time.Now().UTC() }}
	s.recipients = []Recipient{
		{Name: "John Carter", Email: "john.carter@example.com", City: "Orlando"},
		{Name: "Maria Lopez", Email: "maria.lopez@example.com", City: "Tampa"},
		{Name: "Johnny Park", Email: "johnny.park@example.com", City: "Miami"},
		{Name: "Ava Smith", Email: "ava.smith@example.com", City: "Orlando"},
	}
	return s
}

// Slot is one availability entry.
type Slot struct {
	TimeSlot  string `json:"time_slot"`
	Available bool   `json:"available"`
}

func (s *Store) Availability(date string) []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Slot, 0, len(TimeSlots))
	for _, ts := range TimeSlots {
		out = append(out, Slot{TimeSlot: ts, Available: !s.taken(date, ts)})
	}
	return out
}

func (s *Store) taken(date, slot string) bool {
	for _, b := range s.bookings {
		if b.Date == date && b.TimeSlot == slot {
			return true
		}
	}
	return false
}

// AddBooking stores b and returns its id, or false when the slot is taken.
func (s *Store) AddBooking(b Booking) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken(b.Date, b.TimeSlot) {
		return 0, false
	}
	b.ID = len(s.bookings) + 1
	s.bookings = append(s.bookings, b)
	s.addRecipient(Recipient{Name: b.Name, Email: b.Email, Phone: b.Phone, City: b.City})
	s.log("booking_created", b.Name+" on "+b.Date+" "+b.TimeSlot)
	return b.ID, true
}

func (s *Store) AddWaitlist(w WaitlistEntry) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = len(s.waitlist) + 1
	s.waitlist = append(s.waitlist, w)
	s.log("waitlist_joined", w.Name+" for "+w.PreferredDate)
	return w.ID
}

func (s *Store) addRecipient(r Recipient) {
	for _, cur := range s.recipients {
		if strings.EqualFold(cur.Email, r.Email) {
			return
		}
	}
	s.recipients = append(s.recipients, r)
}

func (s *Store) log(action, detail string) {
	s.logs = append(s.logs, ActivityLog{
		ID:        len(s.logs) + 1,
		Action:    action,
		Detail:    detail,
		CreatedAt: s.now(),
	})
}

// Log records an activity entry.
func (s *Store) Log(action, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log(action, detail)
}

// KPIs are the admin dashboard counters.
type KPIs struct {
	TotalBookings    int `json:"total_bookings"`
	UpcomingBookings int `json:"upcoming_bookings"`
	WaitlistCount    int `json:"waitlist_count"`
	Recipients       int `json:"newsletter_recipients"`
}

// KPIs counts bookings dated today or later as upcoming.
func (s *Store) KPIs(today string) KPIs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k := KPIs{
		TotalBookings: len(s.bookings),
		WaitlistCount: len(s.waitlist),
		Recipients:    len(s.recipients),
	}
	for _, b := range s.bookings {
		if b.Date >= today {
			k.UpcomingBookings++
		}
	}
	return k
}

// Week returns the bookings dated in [start, start+7d), ordered by date and slot.
func (s *Store) Week(start time.Time) []Booking {
	end := start.AddDate(0, 0, 7)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Booking, 0)
	for _, b := range s.bookings {
		d, err := time.Parse(dateLayout, b.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && d.Before(end) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out
}

// Logs returns one page of activity logs, newest first. page starts at 1.
func (s *Store) Logs(page, limit int) []ActivityLog {
	out := make([]ActivityLog, 0)
	if page < 1 || limit < 1 {
		return out
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if page > len(s.logs)/limit+1 {
		return out
	}
	skip := (page - 1) * limit
	for i := len(s.logs) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	return out
}

// Recipients filters newsletter recipients by exact city and name substring,
// both case-insensitive. Empty filters match everything.
func (s *Store) Recipients(city, name string) []Recipient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Recipient, 0, len(s.recipients))
	for _, r := range s.recipients {
		if city != "" && !strings.EqualFold(r.City, city) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(name)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
