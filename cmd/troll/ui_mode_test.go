package main

import "testing"

func TestParseProgressMode(t *testing.T) {
	tests := []struct {
		value   string
		want    progressMode
		wantErr bool
	}{
		{value: "", want: progressAuto},
		{value: "auto", want: progressAuto},
		{value: "AUTO", want: progressAuto},
		{value: "on", want: progressForced},
		{value: " On ", want: progressForced},
		{value: "off", want: progressSuppressed},
		{value: "fancy", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseProgressMode(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseProgressMode(%q) accepted an invalid value", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseProgressMode(%q): %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseProgressMode(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestProgressModeExplicit(t *testing.T) {
	if !progressForced.active() {
		t.Error("on must force the progress view")
	}
	if progressSuppressed.active() {
		t.Error("off must suppress the progress view")
	}
	// auto зависит от терминала, в тестах не проверяется
}
