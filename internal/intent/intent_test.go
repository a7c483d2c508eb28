package intent

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		text       string
		wantPrefix string
		wantVerb   string
		wantTokens []string
	}{
		{"look", "look", "", nil},
		{"move north", "move", "north", nil},
		{"party invite bob", "party", "invite", []string{"bob"}},
		{"party", "party", "", nil},
		{"party status", "party", "status", nil},
		{"shell rename NewName", "shell", "rename", []string{"NewName"}},
		{"shell rename old to new", "shell", "rename", []string{"old", "to", "new"}},
		{"  Attack Bob  ", "attack", "bob", nil},
	}
	for _, tt := range tests {
		got := Parse(tt.text, "flux:actor:alice", "flux:place:square", "id-1", 100)
		if got.Prefix != tt.wantPrefix {
			t.Errorf("Parse(%q).Prefix = %q, want %q", tt.text, got.Prefix, tt.wantPrefix)
		}
		if got.Verb != tt.wantVerb {
			t.Errorf("Parse(%q).Verb = %q, want %q", tt.text, got.Verb, tt.wantVerb)
		}
		if len(got.Tokens) != len(tt.wantTokens) {
			t.Errorf("Parse(%q).Tokens = %v, want %v", tt.text, got.Tokens, tt.wantTokens)
			continue
		}
		for i := range tt.wantTokens {
			if got.Tokens[i] != tt.wantTokens[i] {
				t.Errorf("Parse(%q).Tokens[%d] = %q, want %q", tt.text, i, got.Tokens[i], tt.wantTokens[i])
			}
		}
	}
}

func TestParseLiteralVerb(t *testing.T) {
	got := Parse("@credit flux:actor:bob gold 100", "flux:actor:system", "flux:place:nowhere", "id-2", 100)
	if got.Prefix != "" {
		t.Errorf("Prefix = %q, want empty", got.Prefix)
	}
	if got.Verb != "@credit" {
		t.Errorf("Verb = %q, want @credit", got.Verb)
	}
	want := []string{"flux:actor:bob", "gold", "100"}
	if len(got.Tokens) != len(want) {
		t.Fatalf("Tokens = %v, want %v", got.Tokens, want)
	}
	for i := range want {
		if got.Tokens[i] != want[i] {
			t.Errorf("Tokens[%d] = %q, want %q", i, got.Tokens[i], want[i])
		}
	}
}

func TestParseSetsIDAndTimestamp(t *testing.T) {
	got := Parse("look", "flux:actor:alice", "flux:place:square", "abc", 42)
	if got.ID != "abc" || got.Ts != 42 {
		t.Errorf("got ID=%q Ts=%d, want ID=abc Ts=42", got.ID, got.Ts)
	}
}
