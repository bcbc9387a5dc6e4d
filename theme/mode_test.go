package theme

import (
	"context"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
		known bool
	}{
		{input: "dark", want: Dark, known: true},
		{input: " Dark ", want: Dark, known: true},
		{input: "light", want: Light, known: true},
		{input: "", want: Light},
		{input: "sepia", want: Light},
	}
	for _, tt := range tests {
		got, known := ParseMode(tt.input)
		if got != tt.want || known != tt.known {
			t.Fatalf("ParseMode(%q) = %s,%v want %s,%v", tt.input, got, known, tt.want, tt.known)
		}
	}
}

func TestMode_ToggleAndIcon(t *testing.T) {
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Fatalf("toggle should flip modes")
	}
	if Dark.Icon() != IconSun || Light.Icon() != IconMoon {
		t.Fatalf("unexpected icons")
	}
}

func TestEnvSignal(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "empty", env: map[string]string{}, want: false},
		{name: "override dark", env: map[string]string{DefaultOverrideEnv: "dark", "COLORFGBG": "0;15"}, want: true},
		{name: "override light", env: map[string]string{DefaultOverrideEnv: "light", "COLORFGBG": "15;0"}, want: false},
		{name: "unknown override ignored", env: map[string]string{DefaultOverrideEnv: "auto", "COLORFGBG": "15;0"}, want: true},
		{name: "dark background", env: map[string]string{"COLORFGBG": "15;0"}, want: true},
		{name: "light background", env: map[string]string{"COLORFGBG": "0;15"}, want: false},
		{name: "three part", env: map[string]string{"COLORFGBG": "15;default;8"}, want: true},
		{name: "garbage", env: map[string]string{"COLORFGBG": "x"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.env
			signal := EnvSignal{Override: DefaultOverrideEnv, Lookup: func(key string) (string, bool) {
				value, ok := env[key]
				return value, ok
			}}
			got, err := signal.PrefersDark(context.Background())
			if err != nil {
				t.Fatalf("prefers dark: %v", err)
			}
			if got != tt.want {
				t.Fatalf("PrefersDark() = %v, want %v", got, tt.want)
			}
		})
	}
}
