package search

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"barbell bench press", "Barbell Bench Press"},
		{"BARBELL row", "BARBELL Row"},
		{"ez-bar curl", "Ez-Bar Curl"},
		{"EZ-bar curl", "EZ-Bar Curl"},
		{"push-up", "Push-Up"},
		{"  dumbbell   fly  ", "Dumbbell Fly"},
		{"t-bar row", "T-Bar Row"},
		{"90-90 hip switch", "90-90 Hip Switch"},
		{"ab--roller", "Ab--Roller"},
		{"", ""},
		{"élévation latérale", "Élévation Latérale"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DisplayName(tt.in); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
