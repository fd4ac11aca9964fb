package gen

import "testing"

func TestSanitize(t *testing.T) {
	t.Run("Removes Code Fences", func(t *testing.T) {
		raw := "```json\n{\"name\": \"Song\"}\n```"
		got := Sanitize(raw)

		if got != `{"name": "Song"}` {
			t.Errorf("expected fences stripped, got %q", got)
		}
	})

	t.Run("Strips Enclosing Brackets", func(t *testing.T) {
		raw := `[{"name": "A"}]`
		got := Sanitize(raw)

		if got != `{"name": "A"}` {
			t.Errorf("expected brackets stripped, got %q", got)
		}
	})

	t.Run("Splits Object Boundaries", func(t *testing.T) {
		raw := `{"name": "A"}, {"name": "B"}`
		got := Sanitize(raw)

		want := "{\"name\": \"A\"},\n{\"name\": \"B\"}"
		if got != want {
			t.Errorf("expected boundary newline, got %q", got)
		}
	})

	t.Run("Trims Whitespace", func(t *testing.T) {
		got := Sanitize("  \n{\"name\": \"A\"}\n  ")

		if got != `{"name": "A"}` {
			t.Errorf("expected trimmed output, got %q", got)
		}
	})

	t.Run("Idempotent On Clean Input", func(t *testing.T) {
		clean := "{\"name\": \"A\"},\n{\"name\": \"B\"}"

		if got := Sanitize(clean); got != clean {
			t.Errorf("expected clean input unchanged, got %q", got)
		}
	})

	t.Run("Fenced Array Combined", func(t *testing.T) {
		raw := "```json\n[{\"name\": \"A\"}, {\"name\": \"B\"}]\n```"
		got := Sanitize(raw)

		want := "{\"name\": \"A\"},\n{\"name\": \"B\"}"
		if got != want {
			t.Errorf("expected fully sanitized output, got %q", got)
		}
	})
}
