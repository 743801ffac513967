// Package suite holds the fixed booking probe list and its YAML overrides.
package suite

import (
	"net/http"
	"net/url"
	"time"

	"github.com/hamed0406/synccheck/internal/config"
	"github.com/hamed0406/synccheck/internal/domain"
	"github.com/hamed0406/synccheck/internal/probe"
)

const (
	dateLayout = "2006-01-02"
	apiPrefix  = "/api/booking"
)

// FrontendRoutes are the pages checked after the home page.
var FrontendRoutes = []string{"/BookUs", "/menu", "/reviews", "/faqs", "/contact", "/admin-login"}

// Build returns the default probe list in execution order. now anchors the
// dates sent to the availability, booking and waitlist endpoints.
func Build(cfg config.Config, now time.Time) []probe.Probe {
	api := func(path string) string { return cfg.APIBaseURL + apiPrefix + path }
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format(dateLayout) }

	apiProbe := func(name, method, path string, accept ...int) probe.Probe {
		return probe.Probe{
			Name:    name,
			Kind:    probe.KindAPI,
			Method:  method,
			URL:     api(path),
			Accept:  accept,
			Timeout: cfg.APITimeout,
		}
	}
	adminProbe := func(name, path, label string) probe.Probe {
		p := apiProbe(name, http.MethodGet, path, http.StatusOK)
		p.RequiresAuth = true
		p.Expect = &probe.Expect{Query: ".", Label: label, Required: true}
		return p
	}

	probes := []probe.Probe{
		pageProbe(cfg, "Frontend Home", "/", domain.SeverityError),
	}

	// 422 means the endpoint exists but rejected the (missing) date.
	health := apiProbe("API Health Check", http.MethodGet, "/availability", http.StatusOK, http.StatusUnprocessableEntity)
	avail := apiProbe("Availability Check", http.MethodGet, "/availability?"+query("date", day(10)), http.StatusOK, http.StatusUnprocessableEntity)

	book := apiProbe("Booking Creation", http.MethodPost, "/book", http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity)
	book.JSON = map[string]string{
		"name":               "Test Customer",
		"phone":              "5550123",
		"email":              "test@example.com",
		"address":            "123 Test Street",
		"city":               "Test City",
		"zipcode":            "12345",
		"date":               day(15),
		"time_slot":          "6:00 PM - 8:00 PM",
		"contact_preference": "email",
	}
	book.Expect = &probe.Expect{Query: ".id", Label: "id"}

	waitlist := apiProbe("Waitlist Signup", http.MethodPost, "/waitlist", http.StatusOK)
	waitlist.JSON = map[string]string{
		"name":           "Waitlist Test User",
		"phone":          "5559876543",
		"email":          "waitlist.test@example.com",
		"preferred_date": day(20),
		"preferred_time": "7:00 PM - 9:00 PM",
	}
	waitlist.Expect = &probe.Expect{Query: ".id", Label: "id"}

	login := probe.LoginProbe("Admin Login", api("/token"), probe.Credentials{Username: cfg.Username, Password: cfg.Password})
	login.Timeout = cfg.APITimeout

	// 404 is tolerated: not every deployment exposes the current-user route.
	currentUser := apiProbe("Admin Current User", http.MethodGet, "/admin/current", http.StatusOK, http.StatusNotFound)
	currentUser.RequiresAuth = true
	currentUser.Expect = &probe.Expect{Query: ".username", Label: "username"}

	probes = append(probes,
		health,
		avail,
		book,
		waitlist,
		login,
		adminProbe("Admin KPIs", "/admin/kpis", "kpis"),
		currentUser,
		adminProbe("Weekly Bookings", "/admin/weekly?"+query("date", day(0)), "bookings"),
		adminProbe("Activity Logs", "/admin/activity-logs?page=1&limit=10", "log entries"),
		adminProbe("Newsletter Recipients", "/admin/newsletter/recipients", "recipients"),
		adminProbe("Newsletter City Filter", "/admin/newsletter/recipients?"+query("city", "Orlando"), "recipients"),
		adminProbe("Newsletter Name Filter", "/admin/newsletter/recipients?"+query("name", "John"), "recipients"),
		adminProbe("Superadmin List Admins", "/superadmin/admins", "admins"),
	)

	// SPA dev servers do not always serve deep links, so these only warn.
	for _, route := range FrontendRoutes {
		probes = append(probes, pageProbe(cfg, "Frontend "+route, route, domain.SeverityWarning))
	}
	return probes
}

func pageProbe(cfg config.Config, name, route string, sev domain.Severity) probe.Probe {
	return probe.Probe{
		Name:     name,
		Kind:     probe.KindPage,
		Method:   http.MethodGet,
		URL:      cfg.FrontendBaseURL + route,
		Accept:   []int{http.StatusOK},
		Timeout:  cfg.PageTimeout,
		Severity: sev,
	}
}

func query(k, v string) string {
	return url.Values{k: {v}}.Encode()
}
