// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package summary

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// URLErrorDomain is the error domain of URL loading failures. Codes in
	// this domain get a human-readable description appended.
	URLErrorDomain = "NSURLErrorDomain"

	mediumDateLayout = "Jan 2, 2006 at 3:04:05 PM (MST)"
	timeOfDayLayout  = "15:04:05.000000"
)

// =============================================================================
// HEADERS AND QUERY
// =============================================================================

// MakeHeaders builds a header section sorted by header name.
// A nil map yields an empty section, which renders as "Empty".
func MakeHeaders(title string, headers map[string]string) *KeyValueSection {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, Field(k, headers[k]))
	}
	return &KeyValueSection{Title: title, Color: ColorRed, Items: items}
}

// MakeQueryItems builds the "Query Items" section in URL order.
// Returns nil when the URL carries no query.
func MakeQueryItems(u *url.URL) *KeyValueSection {
	if u == nil || u.RawQuery == "" {
		return nil
	}

	items := splitQuery(u.RawQuery)
	if len(items) == 0 {
		return nil
	}
	return &KeyValueSection{Title: "Query Items", Color: ColorPurple, Items: items}
}

// MakeComponents builds the "URL Components" section. Only the parts
// present in u are listed.
func MakeComponents(u *url.URL) *KeyValueSection {
	if u == nil {
		return nil
	}

	var user, password string
	if u.User != nil {
		user = u.User.Username()
		password, _ = u.User.Password()
	}

	var items []Item
	for _, part := range [][2]string{
		{"Scheme", u.Scheme},
		{"Port", u.Port()},
		{"User", user},
		{"Password", password},
		{"Host", u.Hostname()},
		{"Path", u.Path},
		{"Query", u.RawQuery},
		{"Fragment", u.Fragment},
	} {
		if part[1] != "" {
			items = append(items, Field(part[0], part[1]))
		}
	}
	return &KeyValueSection{Title: "URL Components", Color: ColorBlue, Items: items}
}

// RequestOptions are the client settings a request was sent with.
type RequestOptions struct {
	CachePolicy string
	Timeout     time.Duration

	AllowsCellularAccess           bool
	AllowsExpensiveNetworkAccess   bool
	AllowsConstrainedNetworkAccess bool
	ShouldHandleCookies            bool
	ShouldUsePipelining            bool
}

// DefaultRequestOptions returns the settings a client uses unless told
// otherwise.
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		CachePolicy:                    "Use Protocol Cache Policy",
		Timeout:                        60 * time.Second,
		AllowsCellularAccess:           true,
		AllowsExpensiveNetworkAccess:   true,
		AllowsConstrainedNetworkAccess: true,
		ShouldHandleCookies:            true,
	}
}

// MakeOptions builds the "Options" section. Cache policy and timeout are
// always listed; the flags only when they differ from the defaults.
func MakeOptions(o *RequestOptions) *KeyValueSection {
	if o == nil {
		return nil
	}

	items := []Item{
		OptionalField("Cache Policy", o.CachePolicy),
		Field("Timeout Interval", FormatDuration(o.Timeout)),
	}
	if !o.AllowsCellularAccess {
		items = append(items, Field("Allows Cellular Access", "false"))
	}
	if !o.AllowsExpensiveNetworkAccess {
		items = append(items, Field("Allows Expensive Network Access", "false"))
	}
	if !o.AllowsConstrainedNetworkAccess {
		items = append(items, Field("Allows Constrained Network Access", "false"))
	}
	if !o.ShouldHandleCookies {
		items = append(items, Field("Should Handle Cookies", "false"))
	}
	if o.ShouldUsePipelining {
		items = append(items, Field("HTTP Should Use Pipelining", "true"))
	}
	return &KeyValueSection{Title: "Options", Color: ColorIndigo, Items: items}
}

// splitQuery walks the raw query keeping parameter order, which url.Values
// would lose. A parameter without "=" has no value.
func splitQuery(raw string) []Item {
	var items []Item
	for raw != "" {
		var part string
		part, raw, _ = strings.Cut(raw, "&")
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if !hasValue {
			items = append(items, Item{Key: key})
			continue
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		items = append(items, Field(key, value))
	}
	return items
}

// =============================================================================
// OVERVIEW
// =============================================================================

// Overview holds the values shown in the leading "Summary" section.
type Overview struct {
	URL        string
	Method     string
	StatusCode int
	StartDate  time.Time
	Duration   time.Duration
}

// MakeOverview builds the "Summary" section. Unknown values are kept as
// rows with a missing value.
func MakeOverview(o Overview) *KeyValueSection {
	var host string
	if u, err := url.Parse(o.URL); err == nil {
		host = u.Host
	}

	items := []Item{
		OptionalField("URL", o.URL),
		OptionalField("Method", o.Method),
		{Key: "Status Code"},
		OptionalField("Host", host),
		{Key: "Date"},
		{Key: "Duration"},
	}
	if o.StatusCode > 0 {
		items[2] = Field("Status Code", strconv.Itoa(o.StatusCode))
	}
	if !o.StartDate.IsZero() {
		items[4] = Field("Date", o.StartDate.Format(mediumDateLayout))
	}
	if o.Duration > 0 {
		items[5] = Field("Duration", FormatDuration(o.Duration))
	}

	color := ColorPrimary
	if o.StatusCode >= 400 {
		color = ColorRed
	}
	return &KeyValueSection{Title: "Summary", Color: color, Items: items}
}

// =============================================================================
// ERROR
// =============================================================================

// ErrorInfo describes a failed exchange.
type ErrorInfo struct {
	Domain      string
	Code        int
	Description string
}

// MakeErrorDetails builds the "Error" section. Returns nil when there is no
// error to show.
func MakeErrorDetails(e *ErrorInfo) *KeyValueSection {
	if e == nil || e.Code == 0 {
		return nil
	}
	return &KeyValueSection{
		Title: "Error",
		Color: ColorRed,
		Items: []Item{
			OptionalField("Domain", e.Domain),
			Field("Code", describeErrorCode(e.Domain, e.Code)),
			OptionalField("Description", e.Description),
		},
	}
}

func describeErrorCode(domain string, code int) string {
	if domain != URLErrorDomain {
		return strconv.Itoa(code)
	}
	desc, ok := urlErrorDescriptions[code]
	if !ok {
		desc = "Unknown"
	}
	return fmt.Sprintf("%d (%s)", code, desc)
}

var urlErrorDescriptions = map[int]string{
	-1:    "Unknown",
	-999:  "Cancelled",
	-1000: "Bad URL",
	-1001: "Timed Out",
	-1002: "Unsupported URL",
	-1003: "Cannot Find Host",
	-1004: "Cannot Connect To Host",
	-1005: "Network Connection Lost",
	-1006: "DNS Lookup Failed",
	-1007: "HTTP Too Many Redirects",
	-1008: "Resource Unavailable",
	-1009: "Not Connected To Internet",
	-1010: "Redirect To Non Existent Location",
	-1011: "Bad Server Response",
	-1012: "User Cancelled Authentication",
	-1013: "User Authentication Required",
	-1014: "Zero Byte Resource",
	-1015: "Cannot Decode Raw Data",
	-1016: "Cannot Decode Content Data",
	-1017: "Cannot Parse Response",
	-1022: "App Transport Security Requires Secure Connection",
	-1100: "File Does Not Exist",
	-1101: "File Is Directory",
	-1102: "No Permissions To Read File",
	-1103: "Data Length Exceeds Maximum",
	-1200: "Secure Connection Failed",
	-1201: "Server Certificate Has Bad Date",
	-1202: "Server Certificate Untrusted",
	-1203: "Server Certificate Has Unknown Root",
	-1204: "Server Certificate Not Yet Valid",
	-1205: "Client Certificate Rejected",
	-1206: "Client Certificate Required",
}

// =============================================================================
// TIMING
// =============================================================================

// TimingMark is one named point in the life of a request.
type TimingMark struct {
	Name string
	Time time.Time
}

// MakeTiming builds the "Timing" section. The first present mark also
// produces a leading "Date" row; later marks show their offset from it.
// Zero times are skipped.
func MakeTiming(marks []TimingMark) *KeyValueSection {
	var (
		items []Item
		start time.Time
	)
	for _, m := range marks {
		if m.Time.IsZero() {
			continue
		}
		if len(items) == 0 {
			start = m.Time
			items = append(items, Field("Date", m.Time.Format(mediumDateLayout)))
		}
		value := m.Time.Format(timeOfDayLayout)
		if !m.Time.Equal(start) {
			value += " (+" + FormatDuration(m.Time.Sub(start)) + ")"
		}
		items = append(items, Field(m.Name, value))
	}
	return &KeyValueSection{Title: "Timing", Color: ColorOrange, Items: items}
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		minutes := int(d / time.Minute)
		seconds := int((d % time.Minute) / time.Second)
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}
