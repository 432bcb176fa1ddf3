// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capture

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/reqlog/internal/summary"
)

// =============================================================================
// CAPTURE TYPE
// =============================================================================

// Capture is one recorded request/response exchange.
type Capture struct {
	// Identity
	ID string `json:"id" yaml:"id"`

	// Overview
	URL        string    `json:"url" yaml:"url"`
	Method     string    `json:"method" yaml:"method"`
	StatusCode int       `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	StartDate  time.Time `json:"start_date" yaml:"start_date"`
	Duration   Duration  `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Headers
	RequestHeaders  map[string]string `json:"request_headers,omitempty" yaml:"request_headers,omitempty"`
	ResponseHeaders map[string]string `json:"response_headers,omitempty" yaml:"response_headers,omitempty"`

	// Bodies. The base64 form wins when both are set.
	RequestBody        string `json:"request_body,omitempty" yaml:"request_body,omitempty"`
	RequestBodyBase64  string `json:"request_body_base64,omitempty" yaml:"request_body_base64,omitempty"`
	ResponseBody       string `json:"response_body,omitempty" yaml:"response_body,omitempty"`
	ResponseBodyBase64 string `json:"response_body_base64,omitempty" yaml:"response_body_base64,omitempty"`

	// Optional details
	Error    *ErrorInfo             `json:"error,omitempty" yaml:"error,omitempty"`
	Transfer *summary.TransferSizes `json:"transfer,omitempty" yaml:"transfer,omitempty"`
	Timing   *Timing                `json:"timing,omitempty" yaml:"timing,omitempty"`
	Options  *Options               `json:"options,omitempty" yaml:"options,omitempty"`
}

// Options are the client settings the request was sent with. Unset fields
// keep the client defaults.
type Options struct {
	CachePolicy                    string   `json:"cache_policy,omitempty" yaml:"cache_policy,omitempty"`
	Timeout                        Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	AllowsCellularAccess           *bool    `json:"allows_cellular_access,omitempty" yaml:"allows_cellular_access,omitempty"`
	AllowsExpensiveNetworkAccess   *bool    `json:"allows_expensive_network_access,omitempty" yaml:"allows_expensive_network_access,omitempty"`
	AllowsConstrainedNetworkAccess *bool    `json:"allows_constrained_network_access,omitempty" yaml:"allows_constrained_network_access,omitempty"`
	ShouldHandleCookies            *bool    `json:"should_handle_cookies,omitempty" yaml:"should_handle_cookies,omitempty"`
	ShouldUsePipelining            bool     `json:"should_use_pipelining,omitempty" yaml:"should_use_pipelining,omitempty"`
}

func (o *Options) request() *summary.RequestOptions {
	r := summary.DefaultRequestOptions()
	if o.CachePolicy != "" {
		r.CachePolicy = o.CachePolicy
	}
	if o.Timeout > 0 {
		r.Timeout = o.Timeout.Std()
	}
	for _, f := range []struct {
		src *bool
		dst *bool
	}{
		{o.AllowsCellularAccess, &r.AllowsCellularAccess},
		{o.AllowsExpensiveNetworkAccess, &r.AllowsExpensiveNetworkAccess},
		{o.AllowsConstrainedNetworkAccess, &r.AllowsConstrainedNetworkAccess},
		{o.ShouldHandleCookies, &r.ShouldHandleCookies},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	r.ShouldUsePipelining = o.ShouldUsePipelining
	return &r
}

// ErrorInfo is the error a failed exchange ended with.
type ErrorInfo struct {
	Domain      string `json:"domain" yaml:"domain"`
	Code        int    `json:"code" yaml:"code"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Timing holds the timestamps collected while the request ran.
// Zero values mean the phase was not recorded.
type Timing struct {
	FetchStart            time.Time `json:"fetch_start" yaml:"fetch_start"`
	DomainLookupStart     time.Time `json:"domain_lookup_start" yaml:"domain_lookup_start"`
	DomainLookupEnd       time.Time `json:"domain_lookup_end" yaml:"domain_lookup_end"`
	ConnectStart          time.Time `json:"connect_start" yaml:"connect_start"`
	SecureConnectionStart time.Time `json:"secure_connection_start" yaml:"secure_connection_start"`
	SecureConnectionEnd   time.Time `json:"secure_connection_end" yaml:"secure_connection_end"`
	ConnectEnd            time.Time `json:"connect_end" yaml:"connect_end"`
	RequestStart          time.Time `json:"request_start" yaml:"request_start"`
	RequestEnd            time.Time `json:"request_end" yaml:"request_end"`
	ResponseStart         time.Time `json:"response_start" yaml:"response_start"`
	ResponseEnd           time.Time `json:"response_end" yaml:"response_end"`
}

// marks lists the timestamps in the order they happen.
func (t *Timing) marks() []summary.TimingMark {
	return []summary.TimingMark{
		{Name: "Fetch Start", Time: t.FetchStart},
		{Name: "Domain Lookup Start", Time: t.DomainLookupStart},
		{Name: "Domain Lookup End", Time: t.DomainLookupEnd},
		{Name: "Connect Start", Time: t.ConnectStart},
		{Name: "Secure Connection Start", Time: t.SecureConnectionStart},
		{Name: "Secure Connection End", Time: t.SecureConnectionEnd},
		{Name: "Connect End", Time: t.ConnectEnd},
		{Name: "Request Start", Time: t.RequestStart},
		{Name: "Request End", Time: t.RequestEnd},
		{Name: "Response Start", Time: t.ResponseStart},
		{Name: "Response End", Time: t.ResponseEnd},
	}
}

// =============================================================================
// DURATION
// =============================================================================

// Duration is a time.Duration that decodes from a Go duration string
// ("245ms", "1.5s") or a number of milliseconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case nil:
		*d = 0
	case int:
		*d = Duration(time.Duration(x) * time.Millisecond)
	case float64:
		*d = Duration(x * float64(time.Millisecond))
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", x, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// =============================================================================
// LOADING
// =============================================================================

// ErrCaptureNotFound is returned when a capture file doesn't exist.
// Use errors.Is(err, ErrCaptureNotFound) to check for this error.
var ErrCaptureNotFound = &CaptureError{Message: "capture not found"}

// CaptureError represents a capture-related error.
type CaptureError struct {
	Message string
	Path    string
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Message + ": " + e.Path
}

// Is implements errors.Is support for comparing capture errors.
func (e *CaptureError) Is(target error) bool {
	t, ok := target.(*CaptureError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// Load reads a capture from path. Files ending in .yaml or .yml are decoded
// as YAML, everything else as JSON.
func Load(path string) (*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &CaptureError{Message: ErrCaptureNotFound.Message, Path: path}
		}
		return nil, fmt.Errorf("read capture: %w", err)
	}

	c, err := Decode(data, IsYAML(path))
	if err != nil {
		return nil, fmt.Errorf("parse capture %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// IsYAML reports whether path names a YAML capture file.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Decode parses a capture and fills in a generated ID when none is set.
// Base64 bodies are checked here so Summary cannot fail on them later.
func Decode(data []byte, asYAML bool) (*Capture, error) {
	var c Capture
	var err error
	if asYAML {
		err = yaml.Unmarshal(data, &c)
	} else {
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, err
	}

	if _, err := decodeBody(c.RequestBody, c.RequestBodyBase64); err != nil {
		return nil, fmt.Errorf("request_body_base64: %w", err)
	}
	if _, err := decodeBody(c.ResponseBody, c.ResponseBodyBase64); err != nil {
		return nil, fmt.Errorf("response_body_base64: %w", err)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return &c, nil
}

func decodeBody(text, b64 string) ([]byte, error) {
	if b64 == "" {
		if text == "" {
			return nil, nil
		}
		return []byte(text), nil
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
}

// =============================================================================
// SUMMARY
// =============================================================================

// Name returns a display name for the capture: host and path when the URL
// has them, else the ID.
func (c *Capture) Name() string {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return c.ID
	}
	if path := strings.Trim(u.Path, "/"); path != "" {
		return u.Host + "/" + path
	}
	return u.Host
}

// RequestBodyBytes returns the decoded request body.
func (c *Capture) RequestBodyBytes() ([]byte, error) {
	return decodeBody(c.RequestBody, c.RequestBodyBase64)
}

// ResponseBodyBytes returns the decoded response body.
func (c *Capture) ResponseBodyBytes() ([]byte, error) {
	return decodeBody(c.ResponseBody, c.ResponseBodyBase64)
}

// Summary builds the export summary for the capture.
func (c *Capture) Summary() (*summary.Summary, error) {
	reqBody, err := c.RequestBodyBytes()
	if err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}
	respBody, err := c.ResponseBodyBytes()
	if err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}

	s := &summary.Summary{
		RequestBody:  reqBody,
		ResponseBody: respBody,
		Overview: summary.MakeOverview(summary.Overview{
			URL:        c.URL,
			Method:     c.Method,
			StatusCode: c.StatusCode,
			StartDate:  c.StartDate,
			Duration:   c.Duration.Std(),
		}),
		RequestHeaders:  c.RequestHeaders,
		ResponseHeaders: c.ResponseHeaders,
	}

	if c.Error != nil {
		s.Error = summary.MakeErrorDetails(&summary.ErrorInfo{
			Domain:      c.Error.Domain,
			Code:        c.Error.Code,
			Description: c.Error.Description,
		})
	}
	if c.Timing != nil {
		s.Timing = summary.MakeTiming(c.Timing.marks())
	}
	if c.Transfer != nil {
		t := *c.Transfer
		s.Transfer = &t
	}
	if c.Options != nil {
		s.Options = summary.MakeOptions(c.Options.request())
	}
	if u, err := url.Parse(c.URL); err == nil {
		s.Parameters = summary.MakeQueryItems(u)
		if c.URL != "" {
			s.URLComponents = summary.MakeComponents(u)
		}
	}
	return s, nil
}
