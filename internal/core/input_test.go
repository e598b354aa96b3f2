package core

import "testing"

func TestInputFrameMoveKeepsLatest(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionLeft)

	if f.Move != ActionLeft {
		t.Errorf("Move = %v, expected Left", f.Move)
	}
	if f.Has(ActionUp) {
		t.Error("earlier move should be replaced")
	}
}

func TestInputFrameFlags(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionFire)
	f.Set(ActionPause)
	if !f.Has(ActionFire) || !f.Has(ActionPause) || f.Has(ActionQuit) {
		t.Errorf("unexpected flags %v", f.Actions)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}

func TestActionString(t *testing.T) {
	if ActionFire.String() != "Fire" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
	if !ActionDown.IsMove() || ActionFire.IsMove() {
		t.Error("IsMove mismatch")
	}
}
