// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jsonfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPretty(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single member",
			in:   `{"a":1}`,
			want: "{\n  \"a\": 1\n}",
		},
		{
			name: "nested",
			in:   `{"user":{"id":7,"tags":["x","y"]},"ok":true,"next":null}`,
			want: "{\n" +
				"  \"user\": {\n" +
				"    \"id\": 7,\n" +
				"    \"tags\": [\n" +
				"      \"x\",\n" +
				"      \"y\"\n" +
				"    ]\n" +
				"  },\n" +
				"  \"ok\": true,\n" +
				"  \"next\": null\n" +
				"}",
		},
		{
			name: "empty containers",
			in:   `{"a":{},"b":[]}`,
			want: "{\n  \"a\": {},\n  \"b\": []\n}",
		},
		{
			name: "top-level scalar",
			in:   `"hello"`,
			want: `"hello"`,
		},
		{
			name: "number literal kept",
			in:   `[1.50, 1e3, -0]`,
			want: "[\n  1.50,\n  1e3,\n  -0\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pretty([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPretty_KeepsKeyOrder(t *testing.T) {
	got, err := Pretty([]byte(`{"zeta":1,"alpha":2,"mid":3}`))
	require.NoError(t, err)

	z := strings.Index(got, `"zeta"`)
	a := strings.Index(got, `"alpha"`)
	m := strings.Index(got, `"mid"`)
	assert.True(t, z < a && a < m, "keys reordered: %s", got)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"whitespace", []byte("   ")},
		{"plain text", []byte("hello world")},
		{"binary", []byte{0xFF, 0xFE}},
		{"invalid UTF-8 in string", []byte("{\"a\":\"\xff\"}")},
		{"invalid UTF-8 in key", []byte("{\"\xfe\":1}")},
		{"truncated", []byte(`{"a":`)},
		{"trailing value", []byte(`{} {}`)},
		{"trailing garbage", []byte(`[1] x`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestParse_DeepNesting(t *testing.T) {
	const depth = 5000
	in := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	v, err := Parse([]byte(in))
	require.NoError(t, err)

	var sb strings.Builder
	Print(NewTextSink(&sb), v)
	assert.Equal(t, depth, strings.Count(sb.String(), "["))
}

func prettyHTML(t *testing.T, in string) string {
	t.Helper()
	v, err := Parse([]byte(in))
	require.NoError(t, err)
	var sb strings.Builder
	Print(NewHTMLSink(&sb), v)
	return sb.String()
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse([]byte("[\"ok\", \"\xff\"]"))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestPrint_HTMLClassesTokens(t *testing.T) {
	got := prettyHTML(t, `{"a":1,"b":"x","c":null,"d":false}`)

	assert.Contains(t, got, `<span class="o">{</span>`)
	assert.Contains(t, got, `<span class="s">&#34;a&#34;</span><span class="o">:</span> <span class="n">1</span>`)
	assert.Contains(t, got, `<span class="s">&#34;x&#34;</span>`)
	assert.Contains(t, got, `<span class="n">null</span>`)
	assert.Contains(t, got, `<span class="n">false</span>`)
	assert.True(t, strings.HasSuffix(got, `<span class="o">}</span>`))
}

func TestPrint_HTMLEscapesMarkup(t *testing.T) {
	got := prettyHTML(t, `{"html":"<script>alert(1)</script>"}`)

	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak\ttab", `"line\nbreak\ttab"`},
		{"\x01", `"\u0001"`},
		{"<&>", `"<&>"`},
		{"héllo", `"héllo"`},
		{"bad\xffbyte", "\"bad\ufffdbyte\""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Quote(tt.in))
	}
}

func TestTokenClass(t *testing.T) {
	assert.Equal(t, "", TokenSpace.Class())
	assert.Equal(t, ClassString, TokenKey.Class())
	assert.Equal(t, ClassString, TokenString.Class())
	assert.Equal(t, ClassPunctuation, TokenPunctuation.Class())
	assert.Equal(t, ClassNumber, TokenNumber.Class())
	assert.Equal(t, ClassNumber, TokenKeyword.Class())
	assert.Equal(t, ClassNumber, TokenNull.Class())
}
