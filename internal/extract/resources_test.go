package extract

import (
	"net/url"
	"strings"
	"testing"
)

func TestIsMinified(t *testing.T) {
	dense := strings.Repeat("a=b+c;", 167)[:1000]

	var wrapped strings.Builder
	for i := 0; i < len(dense); i += 40 {
		end := i + 40
		if end > len(dense) {
			end = len(dense)
		}
		wrapped.WriteString(dense[i:end])
		wrapped.WriteString("\n")
	}

	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{
			name:     "short code below floor",
			code:     "function a () {\n  return 1;\n}\n  // x  ",
			expected: true,
		},
		{
			name:     "1000 chars on one line",
			code:     dense,
			expected: true,
		},
		{
			name:     "same content wrapped every 40 chars",
			code:     wrapped.String(),
			expected: false,
		},
		{
			name:     "indented source",
			code:     "function greet(name) {\n    const message = 'Hello, ' + name;\n    console.log(message);\n    return message;\n}\n",
			expected: false,
		},
		{
			// a single spaced-out line is judged only by line length
			name:     "long spaced line counts as minified",
			code:     strings.Repeat("var x = 1 ; ", 60),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMinified(tt.code); got != tt.expected {
				t.Errorf("IsMinified() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsMinifiedURL(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"https://cdn.example.com/jquery.min.js", true},
		{"https://example.com/static/app.3f9a2c1d.js", true},
		{"https://example.com/static/main-5d41402abc.css?v=2", true},
		{"https://example.com/js/app.js", false},
		{"https://example.com/css/site.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			if err != nil {
				t.Fatalf("url.Parse() error: %v", err)
			}
			if got := isMinifiedURL(u); got != tt.expected {
				t.Errorf("isMinifiedURL(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestIsJavaScript(t *testing.T) {
	tests := map[string]bool{
		"":                           true,
		"text/javascript":            true,
		"module":                     true,
		"application/ld+json":        false,
		"text/x-handlebars-template": false,
	}
	for scriptType, expected := range tests {
		if got := isJavaScript(scriptType); got != expected {
			t.Errorf("isJavaScript(%q) = %v, want %v", scriptType, got, expected)
		}
	}
}
