package mjml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mediadigest/pkg/mjml"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tags escaped", input: "<b>Al</b>", want: "&lt;b&gt;Al&lt;/b&gt;"},
		{name: "ampersand escaped", input: "Tom & Jerry", want: "Tom &amp; Jerry"},
		{name: "identity on plain text", input: "Just a plain sentence, 100% safe.", want: "Just a plain sentence, 100% safe."},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mjml.EscapeHTML(tt.input))
		})
	}
}

func TestEscapeAttribute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a &quot;quoted&quot; value", mjml.EscapeAttribute(`a "quoted" value`))
	assert.Equal(t, "x&amp;y", mjml.EscapeAttribute("x&y"))
	assert.Equal(t, "plain", mjml.EscapeAttribute("plain"))
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tags removed", input: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{name: "entities resolved", input: "Fish &amp; Chips", want: "Fish & Chips"},
		{name: "script content dropped", input: `<script>alert("x")</script>text`, want: "text"},
		{name: "plain text unchanged", input: "nothing to strip", want: "nothing to strip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mjml.StripHTML(tt.input))
		})
	}
}

func TestEscapeRegex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `S2 E5: Ep\?`, mjml.EscapeRegex("S2 E5: Ep?"))
	assert.Equal(t, `a\.b\*c`, mjml.EscapeRegex("a.b*c"))
}
