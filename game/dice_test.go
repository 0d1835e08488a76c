package game

import (
	"testing"

	"github.com/vrabec/ludo/model"
)

func TestRollWithoutMovesPassesTurnImmediately(t *testing.T) {
	g := newTestGame(t)
	// Every red pawn sits in the initial zone; a 3 cannot enter.
	ApplyRoll(g, 3)

	for i := 0; i < model.PawnsPerColor; i++ {
		if g.Pawn(model.Red, i).Action != nil {
			t.Fatalf("pawn %d got an action on a 3", i)
		}
	}
	if g.Current != sessions[1] {
		t.Fatalf("turn not passed, current %q", g.Current)
	}
	if g.Dice.RollCount != 0 || !g.Dice.AbleToRoll {
		t.Fatalf("roll chain not reset: %+v", g.Dice)
	}
}

func TestRollSixAssignsEntryActions(t *testing.T) {
	g := newTestGame(t)
	ApplyRoll(g, 6)

	for i := 0; i < model.PawnsPerColor; i++ {
		action := g.Pawn(model.Red, i).Action
		if action == nil || action.Kind != model.ActionMoveFromInitial || action.Pawn != i {
			t.Fatalf("pawn %d: unexpected action %+v", i, action)
		}
	}
	if g.Current != sessions[0] {
		t.Fatal("turn passed although moves exist")
	}
	if g.Dice.AbleToRoll || !g.Dice.RollAnimation || g.Dice.RollCount != 1 {
		t.Fatalf("dice state after roll: %+v", g.Dice)
	}
}

func TestRollOneAssignsEntryActions(t *testing.T) {
	g := newTestGame(t)
	ApplyRoll(g, 1)
	if g.Pawn(model.Red, 0).Action == nil {
		t.Fatal("a 1 must allow entry")
	}
}

func TestRollAssignsActionsPerZone(t *testing.T) {
	g := newTestGame(t)
	onRoad := placePawn(g, model.Red, 0, model.RoadSquareID(10))
	inLane := placePawn(g, model.Red, 1, model.FinalSquareID(model.Red, 4))
	arrived := placePawn(g, model.Red, 2, model.FinalSquareID(model.Red, 5))
	arrived.EndReached = true

	ApplyRoll(g, 2)

	if a := onRoad.Action; a == nil || a.Kind != model.ActionMoveOnRoad {
		t.Fatalf("road pawn action %+v", onRoad.Action)
	}
	if inLane.Action != nil {
		t.Fatalf("lane pawn would overshoot but got %+v", inLane.Action)
	}
	if arrived.Action != nil {
		t.Fatal("arrived pawn got an action")
	}
	if g.Pawn(model.Red, 3).Action != nil {
		t.Fatal("initial pawn entered on a 2")
	}
}

func TestConfirmRoll(t *testing.T) {
	g := newTestGame(t)
	ApplyRoll(g, 6)
	if err := ConfirmRoll(g, sessions[1]); err != ErrNotYourTurn {
		t.Fatalf("confirm by bystander: got %v", err)
	}
	if err := ConfirmRoll(g, sessions[0]); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if g.Dice.RollAnimation {
		t.Fatal("roll animation still armed")
	}
}
