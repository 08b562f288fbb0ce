package main

import "testing"

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if shouldUseTUI(uiModeOff, false) || !shouldUseTUI(uiModeOn, true) {
		t.Error("explicit modes must win")
	}
}

func TestTokenFormatter(t *testing.T) {
	for _, format := range []string{"pretty", "json", "msgpack"} {
		if _, err := tokenFormatter(format); err != nil {
			t.Errorf("tokenFormatter(%q): %v", format, err)
		}
	}
	if _, err := tokenFormatter("xml"); err == nil {
		t.Error("tokenFormatter(xml) should fail")
	}
}

func TestErrFailedMessage(t *testing.T) {
	if got := (errFailed{files: 1}).Error(); got != "1 file has errors" {
		t.Errorf("got %q", got)
	}
	if got := (errFailed{files: 3}).Error(); got != "3 files have errors" {
		t.Errorf("got %q", got)
	}
}
