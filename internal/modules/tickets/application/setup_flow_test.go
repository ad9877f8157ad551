package application

import (
	"testing"
	"time"
)

func TestSetupFlow_CompletesInOrder(t *testing.T) {
	flow := NewSetupFlow(time.Minute)
	flow.Begin("corr-1", "guild-1")

	if !flow.ResolveCategory("corr-1", "cat-1") {
		t.Fatal("expected category selection to be accepted")
	}

	result, ok := flow.ResolveLogs("corr-1", "log-1")
	if !ok {
		t.Fatal("expected log selection to complete the flow")
	}
	want := SetupResult{GuildID: "guild-1", CategoryID: "cat-1", LogChannelID: "log-1"}
	if result != want {
		t.Errorf("got %+v, want %+v", result, want)
	}
}

func TestSetupFlow_UnknownCorrelationID(t *testing.T) {
	flow := NewSetupFlow(time.Minute)

	if flow.ResolveCategory("missing", "cat-1") {
		t.Error("expected unknown correlation id to be rejected")
	}
	if _, ok := flow.ResolveLogs("missing", "log-1"); ok {
		t.Error("expected unknown correlation id to be rejected")
	}
}

func TestSetupFlow_StageOrderEnforced(t *testing.T) {
	flow := NewSetupFlow(time.Minute)
	flow.Begin("corr-1", "guild-1")

	// Log selection before category selection must not complete the flow.
	if _, ok := flow.ResolveLogs("corr-1", "log-1"); ok {
		t.Error("expected log selection to be rejected at category stage")
	}

	if !flow.ResolveCategory("corr-1", "cat-1") {
		t.Fatal("expected category selection to be accepted")
	}
	if flow.ResolveCategory("corr-1", "cat-2") {
		t.Error("expected second category selection to be rejected")
	}
}

func TestSetupFlow_CompletedFlowCannotBeReused(t *testing.T) {
	flow := NewSetupFlow(time.Minute)
	flow.Begin("corr-1", "guild-1")
	flow.ResolveCategory("corr-1", "cat-1")
	flow.ResolveLogs("corr-1", "log-1")

	if _, ok := flow.ResolveLogs("corr-1", "log-2"); ok {
		t.Error("expected completed flow to be gone")
	}
}

func TestSetupFlow_Expires(t *testing.T) {
	flow := NewSetupFlow(10 * time.Millisecond)
	flow.Begin("corr-1", "guild-1")

	time.Sleep(50 * time.Millisecond)

	if flow.ResolveCategory("corr-1", "cat-1") {
		t.Error("expected expired prompt to be rejected")
	}
}
