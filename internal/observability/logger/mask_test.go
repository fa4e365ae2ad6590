package logger

import "testing"

func TestMaskAuthorization(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef1234")
	want := "Bearer ****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskEmail(t *testing.T) {
	got := MaskEmail("jane.doe@example.com")
	want := "j***@example.com"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := MaskEmail("not-an-email"); got != "****mail" {
		t.Fatalf("expected last-4 fallback, got %q", got)
	}
}

func TestMaskPhone(t *testing.T) {
	got := MaskPhone("(217) 555-1234")
	want := "****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"email": "jane.doe@example.com",
		"token": "abc12345",
		"nested": map[string]any{
			"phone": "2175551234",
		},
	}
	masked := MaskJSON(input)
	if masked["email"] != "j***@example.com" {
		t.Fatalf("expected masked email, got %v", masked["email"])
	}
	if masked["token"] != "****2345" {
		t.Fatalf("expected masked token, got %v", masked["token"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["phone"] != "****1234" {
		t.Fatalf("expected masked phone, got %v", nested["phone"])
	}
}
