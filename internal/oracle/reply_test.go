package oracle

import "testing"

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain payload", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "\n  {\"a\": 1}  \n", `{"a": 1}`},
		{"fenced with language tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced without language tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence markers inline", "```{\"a\": 1}```", `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFences(tc.raw); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
