// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package summary

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Color is a semantic tag attached to a section. Renderers treat it as a
// hint only; plain text and Markdown ignore it.
type Color string

const (
	ColorPrimary Color = "primary"
	ColorGray    Color = "gray"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorIndigo  Color = "indigo"
)

// =============================================================================
// KEY/VALUE SECTIONS
// =============================================================================

// Item is one row of a KeyValueSection. A nil Value means the value is
// unknown; renderers show a placeholder instead of dropping the row.
type Item struct {
	Key   string
	Value *string
}

// Field returns an item with a known value.
func Field(key, value string) Item {
	return Item{Key: key, Value: &value}
}

// OptionalField returns an item whose value is missing when value is empty.
func OptionalField(key, value string) Item {
	if value == "" {
		return Item{Key: key}
	}
	return Field(key, value)
}

// KeyValueSection is a titled list of fields rendered by every export format.
// Items are rendered in the order given.
type KeyValueSection struct {
	Title string
	Color Color
	Items []Item
}

// NewSection creates a section with the given items.
func NewSection(title string, color Color, items ...Item) *KeyValueSection {
	return &KeyValueSection{Title: title, Color: color, Items: items}
}

// IsEmpty reports whether the section has no items.
func (s *KeyValueSection) IsEmpty() bool {
	return s == nil || len(s.Items) == 0
}

// =============================================================================
// SUMMARY
// =============================================================================

// TransferSizes is the byte-count breakdown of one exchange.
type TransferSizes struct {
	TotalBytesSent       int64 `json:"total_bytes_sent" yaml:"total_bytes_sent"`
	HeadersBytesSent     int64 `json:"headers_bytes_sent" yaml:"headers_bytes_sent"`
	BodyBytesSent        int64 `json:"body_bytes_sent" yaml:"body_bytes_sent"`
	TotalBytesReceived   int64 `json:"total_bytes_received" yaml:"total_bytes_received"`
	HeadersBytesReceived int64 `json:"headers_bytes_received" yaml:"headers_bytes_received"`
	BodyBytesReceived    int64 `json:"body_bytes_received" yaml:"body_bytes_received"`
}

// Summary is an immutable snapshot of one logged network exchange.
// Exports only read from it, so one Summary may be shared by concurrent
// exports.
type Summary struct {
	RequestBody  []byte
	ResponseBody []byte

	Overview   *KeyValueSection
	Error      *KeyValueSection
	Timing     *KeyValueSection
	Parameters *KeyValueSection

	// URLComponents and Options are not part of the exported document.
	// The terminal preview shows them after it.
	URLComponents *KeyValueSection
	Options       *KeyValueSection

	// Transfer is nil when no metrics were collected.
	Transfer *TransferSizes

	RequestHeaders  map[string]string
	ResponseHeaders map[string]string
}

// RequestHeadersSection returns the request headers sorted by name.
func (s *Summary) RequestHeadersSection() *KeyValueSection {
	return MakeHeaders("Request Headers", s.RequestHeaders)
}

// ResponseHeadersSection returns the response headers sorted by name.
func (s *Summary) ResponseHeadersSection() *KeyValueSection {
	return MakeHeaders("Response Headers", s.ResponseHeaders)
}
