package timezones

import "testing"

func TestLoad(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestAll(t *testing.T) {
	zones, err := All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(zones) == 0 {
		t.Fatal("All() returned empty zones list")
	}
	for _, z := range zones {
		if z.ID == "" {
			t.Error("Zone has empty ID")
		}
		if z.Label == "" {
			t.Errorf("Zone %q has empty Label", z.ID)
		}
	}
}

func TestDefaultIsValid(t *testing.T) {
	if !Valid(Default) {
		t.Errorf("Default zone %q is not in the curated list", Default)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"Asia/Kolkata", "India (IST)"},
		{"UTC", "UTC"},
		{"Invalid/Timezone", "Invalid/Timezone"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Label(tt.id); got != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"America/New_York", true},
		{"UTC", true},
		{"Europe/London", true},
		{"Invalid/Timezone", false},
		{"", false},
		{"utc", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Valid(tt.id); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestGroups(t *testing.T) {
	groups, err := Groups()
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if len(groups) == 0 {
		t.Fatal("Groups() returned empty groups list")
	}
	for i, g := range groups {
		if g.Region == "" {
			t.Error("Group has empty Region")
		}
		if len(g.Zones) == 0 {
			t.Errorf("Group %q has no zones", g.Region)
		}
		if i > 0 && g.Region < groups[i-1].Region {
			t.Errorf("Groups not sorted: %q comes after %q", g.Region, groups[i-1].Region)
		}
		for j := 1; j < len(g.Zones); j++ {
			if g.Zones[j].Label < g.Zones[j-1].Label {
				t.Errorf("Zones in group %q not sorted: %q after %q", g.Region, g.Zones[j].Label, g.Zones[j-1].Label)
			}
		}
	}
}
