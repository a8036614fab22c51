package dispatch

import "testing"

func TestFuseSignalsNormalizes(t *testing.T) {
	sig := FuseSignals("Fix My AC", []string{"Cold Room", "", "  "}, []string{"Entebbe"})
	if got := sig.Keywords(); len(got) != 1 || got[0] != "cold room" {
		t.Fatalf("unexpected keywords: %v", got)
	}
	if got := sig.Entities(); len(got) != 1 || got[0] != "entebbe" {
		t.Fatalf("unexpected entities: %v", got)
	}
	if sig.SignalText() != "cold room entebbe" {
		t.Fatalf("unexpected signal text: %q", sig.SignalText())
	}
	if sig.CombinedText() != "Fix My AC cold room entebbe" {
		t.Fatalf("unexpected combined text: %q", sig.CombinedText())
	}
}

func TestSignalTextFallsBackToRawMessage(t *testing.T) {
	sig := FuseSignals("Need HELP at the Airport", nil, nil)
	if sig.HasExtracted() {
		t.Fatalf("expected no extracted terms")
	}
	if sig.SignalText() != "need help at the airport" {
		t.Fatalf("unexpected signal text: %q", sig.SignalText())
	}
	if sig.CombinedText() != "Need HELP at the Airport" {
		t.Fatalf("unexpected combined text: %q", sig.CombinedText())
	}
}

func TestSignalsAreNotAliased(t *testing.T) {
	kws := []string{"chiller"}
	sig := FuseSignals("", kws, nil)
	kws[0] = "changed"
	got := sig.Keywords()
	got[0] = "mutated"
	if sig.Keywords()[0] != "chiller" {
		t.Fatalf("signals were mutated through a shared slice")
	}
}

func TestEmptyMessage(t *testing.T) {
	sig := FuseSignals("", nil, nil)
	if sig.SignalText() != "" || sig.CombinedText() != "" {
		t.Fatalf("expected empty texts, got %q / %q", sig.SignalText(), sig.CombinedText())
	}
}
