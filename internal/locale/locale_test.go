package locale

import (
	"errors"
	"testing"
)

func testVoices() []Voice {
	return []Voice{
		{Name: "Samantha", Lang: "en-US"},
		{Name: "Amelie", Lang: "fr-FR"},
		{Name: "Anna", Lang: "de"},
	}
}

func TestVoiceFor(t *testing.T) {
	s, err := NewSelector("en-US", testVoices())
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	tests := []struct {
		lang         string
		wantName     string
		wantFallback bool
	}{
		{"en-US", "Samantha", false},
		{"en-GB", "Samantha", false},
		{"fr", "Amelie", false},
		{"de-AT", "Anna", false},
		{"ja", "Samantha", true},
		{"not a tag!", "Samantha", true},
	}

	for _, tt := range tests {
		v, fallback := s.VoiceFor(tt.lang)
		if v.Name != tt.wantName || fallback != tt.wantFallback {
			t.Errorf("VoiceFor(%q) = (%s, %v), want (%s, %v)", tt.lang, v.Name, fallback, tt.wantName, tt.wantFallback)
		}
	}
}

func TestNoVoices(t *testing.T) {
	s, err := NewSelector("fr", nil)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	v, fallback := s.VoiceFor("fr")
	if !fallback {
		t.Error("expected fallback with no voices")
	}
	if v.Lang != "fr" {
		t.Errorf("UI voice lang = %q, want fr", v.Lang)
	}
}

func TestInvalidUILocale(t *testing.T) {
	_, err := NewSelector("???", nil)
	if !errors.Is(err, ErrInvalidLocale) {
		t.Errorf("err = %v, want ErrInvalidLocale", err)
	}
}

func TestSameLanguage(t *testing.T) {
	if !SameLanguage("en-US", "en-GB") {
		t.Error("en-US and en-GB should share a language")
	}
	if SameLanguage("en", "fr") {
		t.Error("en and fr should differ")
	}
	if SameLanguage("", "en") {
		t.Error("empty tag should never match")
	}
}
