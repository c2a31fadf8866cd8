package location

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		rawPath string
		base    string
		want    string
	}{
		{"/app/dashboard", "/app", "/dashboard"},
		{"/app", "/app", "/"},
		{"/app/", "/app", "/"},
		{"/MyOtherApp/x", "/MyApp", "~/MyOtherApp/x"},
		{"/myAPP/x", "/MyApp", "/x"},
		{"/MyApp", "/myapp", "/"},
		{"/users", "", "/users"},
		{"/apple", "/app", "~/apple"},
		{"~/already/escaped", "/app", "~/already/escaped"},
	}

	for _, tt := range tests {
		got := Resolve(tt.rawPath, tt.base)
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.rawPath, tt.base, got, tt.want)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	inputs := []struct {
		rawPath, base string
	}{
		{"/app/dashboard", "/app"},
		{"/MyOtherApp/x", "/MyApp"},
		{"/app", "/app"},
		{"/plain", ""},
	}

	for _, tt := range inputs {
		once := Resolve(tt.rawPath, tt.base)
		twice := Resolve(once, tt.base)
		if once != twice {
			t.Errorf("Resolve(Resolve(%q, %q)) = %q, want %q", tt.rawPath, tt.base, twice, once)
		}
	}
}
