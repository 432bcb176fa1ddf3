// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jsonfmt

import (
	"html"
	"strings"
	"unicode/utf8"
)

// Indent is the indentation added per nesting level.
const Indent = "  "

// =============================================================================
// TOKENS AND SINKS
// =============================================================================

// Token classifies a piece of printer output.
type Token int

const (
	// TokenSpace is indentation, line breaks and separating spaces.
	TokenSpace Token = iota
	TokenPunctuation
	TokenKey
	TokenString
	TokenNumber
	TokenKeyword
	TokenNull
)

// HTML class names used by HTMLSink. The export stylesheet themes these.
const (
	ClassString      = "s"
	ClassPunctuation = "o"
	ClassNumber      = "n"
)

// Class returns the HTML class of a token, or "" for whitespace.
func (t Token) Class() string {
	switch t {
	case TokenKey, TokenString:
		return ClassString
	case TokenPunctuation:
		return ClassPunctuation
	case TokenNumber, TokenKeyword, TokenNull:
		return ClassNumber
	}
	return ""
}

// Sink receives printer output.
type Sink interface {
	Append(s string, t Token)
}

// TextSink writes tokens verbatim.
type TextSink struct {
	sb *strings.Builder
}

// NewTextSink returns a sink appending to sb.
func NewTextSink(sb *strings.Builder) *TextSink {
	return &TextSink{sb: sb}
}

// Append implements Sink.
func (s *TextSink) Append(text string, _ Token) {
	s.sb.WriteString(text)
}

// HTMLSink writes escaped tokens wrapped in class-tagged spans.
type HTMLSink struct {
	sb *strings.Builder
}

// NewHTMLSink returns a sink appending to sb.
func NewHTMLSink(sb *strings.Builder) *HTMLSink {
	return &HTMLSink{sb: sb}
}

// Append implements Sink.
func (s *HTMLSink) Append(text string, t Token) {
	class := t.Class()
	if class == "" {
		s.sb.WriteString(text)
		return
	}
	s.sb.WriteString(`<span class="`)
	s.sb.WriteString(class)
	s.sb.WriteString(`">`)
	s.sb.WriteString(html.EscapeString(text))
	s.sb.WriteString("</span>")
}

// =============================================================================
// PRINTER
// =============================================================================

// Print writes v into sink with two-space indentation.
func Print(sink Sink, v Value) {
	printValue(sink, v, 0)
}

// Pretty parses data and returns it pretty-printed as plain text.
func Pretty(data []byte) (string, error) {
	v, err := Parse(data)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	Print(NewTextSink(&sb), v)
	return sb.String(), nil
}

func printValue(sink Sink, v Value, depth int) {
	switch v.Kind {
	case KindObject:
		printObject(sink, v.Members, depth)
	case KindArray:
		printArray(sink, v.Elems, depth)
	case KindString:
		sink.Append(Quote(v.Text), TokenString)
	case KindNumber:
		sink.Append(v.Text, TokenNumber)
	case KindBool:
		if v.Bool {
			sink.Append("true", TokenKeyword)
		} else {
			sink.Append("false", TokenKeyword)
		}
	default:
		sink.Append("null", TokenNull)
	}
}

func printObject(sink Sink, members []Member, depth int) {
	if len(members) == 0 {
		sink.Append("{}", TokenPunctuation)
		return
	}
	sink.Append("{", TokenPunctuation)
	inner := strings.Repeat(Indent, depth+1)
	for i, m := range members {
		sink.Append("\n"+inner, TokenSpace)
		sink.Append(Quote(m.Key), TokenKey)
		sink.Append(":", TokenPunctuation)
		sink.Append(" ", TokenSpace)
		printValue(sink, m.Value, depth+1)
		if i < len(members)-1 {
			sink.Append(",", TokenPunctuation)
		}
	}
	sink.Append("\n"+strings.Repeat(Indent, depth), TokenSpace)
	sink.Append("}", TokenPunctuation)
}

func printArray(sink Sink, elems []Value, depth int) {
	if len(elems) == 0 {
		sink.Append("[]", TokenPunctuation)
		return
	}
	sink.Append("[", TokenPunctuation)
	inner := strings.Repeat(Indent, depth+1)
	for i, e := range elems {
		sink.Append("\n"+inner, TokenSpace)
		printValue(sink, e, depth+1)
		if i < len(elems)-1 {
			sink.Append(",", TokenPunctuation)
		}
	}
	sink.Append("\n"+strings.Repeat(Indent, depth), TokenSpace)
	sink.Append("]", TokenPunctuation)
}

// Quote returns s as a JSON string literal. Unlike encoding/json it leaves
// <, > and & alone; HTML escaping is the sink's job.
func Quote(s string) string {
	const hex = "0123456789abcdef"

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				sb.WriteByte('\\')
				sb.WriteByte(c)
			case '\n':
				sb.WriteString(`\n`)
			case '\r':
				sb.WriteString(`\r`)
			case '\t':
				sb.WriteString(`\t`)
			case '\b':
				sb.WriteString(`\b`)
			case '\f':
				sb.WriteString(`\f`)
			default:
				if c < 0x20 {
					sb.WriteString(`\u00`)
					sb.WriteByte(hex[c>>4])
					sb.WriteByte(hex[c&0xF])
				} else {
					sb.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
	return sb.String()
}
