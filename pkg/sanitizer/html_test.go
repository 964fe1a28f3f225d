package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/polyglot/pkg/sanitizer"
)

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"customer name with markup", `<b>Alice</b> Smith`, "Alice Smith"},
		{"script body is dropped", `Bob<script>fetch("/api/orders")</script>`, "Bob"},
		{"style body is dropped", `Carol<style>body{display:none}</style>`, "Carol"},
		{"entities are decoded", `Tom &amp; Jerry &lt;3`, "Tom & Jerry <3"},
		{"accents survive", `<span>Créer une commande</span>`, "Créer une commande"},
		{"pseudo wrappers survive", "\n  <h1>[[order.title]]</h1>\n", "[[order.title]]"},
		{"image collapses to nothing", `<img src="x" onerror="steal()">`, ""},
		{"link keeps its text", `<a href="javascript:steal()">pay now</a>`, "pay now"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.StripTags(tt.input))
		})
	}
}

func TestEscapeParam(t *testing.T) {
	t.Parallel()

	t.Run("plain values pass through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Alice Smith", sanitizer.EscapeParam("Alice Smith"))
		assert.Equal(t, "37.50", sanitizer.EscapeParam("37.50"))
	})

	t.Run("markup is stripped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Alice", sanitizer.EscapeParam(`<b>Alice</b><script>steal()</script>`))
		assert.Empty(t, sanitizer.EscapeParam(`<svg onload="steal()">`))
	})

	t.Run("ampersands and comparisons stay readable", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Ben & Jerry's", sanitizer.EscapeParam("Ben & Jerry's"))
		assert.Equal(t, "5 > 3", sanitizer.EscapeParam("5 > 3"))
	})
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formatting is kept", `<p>Deliver <strong>before noon</strong></p>`, `<p>Deliver <strong>before noon</strong></p>`},
		{"lists are kept", `<ul><li>gift wrap</li><li>no invoice</li></ul>`, `<ul><li>gift wrap</li><li>no invoice</li></ul>`},
		{"line breaks are kept", `ring twice<br>leave at door`, `ring twice<br>leave at door`},
		{"links get nofollow", `<a href="https://example.com/track">track</a>`, `<a href="https://example.com/track" rel="nofollow">track</a>`},
		{"scripts are removed", `<p>ok</p><script>steal()</script>`, `<p>ok</p>`},
		{"handlers are removed", `<p onclick="steal()">ok</p>`, `<p>ok</p>`},
		{"javascript links lose the anchor", `<a href="JaVaScRiPt:steal()">click</a>`, "click"},
		{"unknown containers are unwrapped", `<div>content</div>`, "content"},
		{"frames are removed", `<iframe src="https://evil.example"></iframe>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.SanitizeHTML(tt.input))
		})
	}
}
