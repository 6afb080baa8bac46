package cmd

import "testing"

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{name: "flag wins over env", flag: "debug", env: "error", want: "debug"},
		{name: "env used when flag unset", flag: "", env: "info", want: "info"},
		{name: "both empty", flag: "", env: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveLogLevel(tt.flag, tt.env); got != tt.want {
				t.Errorf("resolveLogLevel(%q, %q) = %q, want %q", tt.flag, tt.env, got, tt.want)
			}
		})
	}
}
