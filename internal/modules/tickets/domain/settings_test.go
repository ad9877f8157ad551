package domain

import "testing"

func TestChannelName(t *testing.T) {
	tests := []struct {
		username string
		want     string
	}{
		{"alice", "ticket-alice"},
		{"Alice Smith", "ticket-alice-smith"},
		{"BIGNAME", "ticket-bigname"},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			if got := ChannelName(tt.username); got != tt.want {
				t.Errorf("ChannelName(%q) = %q, want %q", tt.username, got, tt.want)
			}
		})
	}
}

func TestIsTicketChannel(t *testing.T) {
	if !IsTicketChannel("ticket-alice") {
		t.Error("expected ticket-alice to be a ticket channel")
	}
	if IsTicketChannel("general") {
		t.Error("expected general not to be a ticket channel")
	}
}

func TestSettings_Configured(t *testing.T) {
	if (Settings{}).Configured() {
		t.Error("expected empty settings to be unconfigured")
	}
	if !(Settings{CategoryID: "1"}).Configured() {
		t.Error("expected settings with category to be configured")
	}
}
