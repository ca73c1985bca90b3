package domain

import (
	"math/rand"
	"testing"
)

func TestDrawFromPile(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	drawPile := []Card{{ID: "N2"}, {ID: "N4"}}

	card, newDraw, newPlayed := Draw(drawPile, nil, rng)
	if card == nil || card.ID != "N2" {
		t.Fatalf("drew %v, want N2", card)
	}
	if len(newDraw) != 1 || newDraw[0].ID != "N4" {
		t.Errorf("draw pile after = %v, want [N4]", newDraw)
	}
	if len(newPlayed) != 0 {
		t.Errorf("played pile changed on plain draw: %v", newPlayed)
	}
}

func TestDrawRecyclesPlayedPile(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	played := []Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	card, newDraw, newPlayed := Draw(nil, played, rng)
	if card == nil {
		t.Fatal("expected a card after recycling")
	}
	if len(newPlayed) != 1 || newPlayed[0].ID != "c" {
		t.Fatalf("played pile = %v, want just the most recent card c", newPlayed)
	}
	if len(newDraw) != 1 {
		t.Fatalf("draw pile after recycle+draw = %d cards, want 1", len(newDraw))
	}
	// The drawn card and the remaining pile card must be a and b in some order.
	got := map[string]bool{card.ID: true, newDraw[0].ID: true}
	if !got["a"] || !got["b"] {
		t.Errorf("recycled cards = %v, want {a, b}", got)
	}
}

func TestDrawExhaustedIsNoOp(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	played := []Card{{ID: "only"}}

	card, newDraw, newPlayed := Draw(nil, played, rng)
	if card != nil {
		t.Fatalf("drew %v from exhausted piles", card)
	}
	if len(newDraw) != 0 || len(newPlayed) != 1 {
		t.Errorf("piles changed on no-op draw: draw=%v played=%v", newDraw, newPlayed)
	}
}

func TestPlayFromHand(t *testing.T) {
	hand := []Card{{ID: "N2"}, {ID: "AA"}, {ID: "S$1"}}

	newHand, newPlayed, ok := PlayFromHand(hand, nil, "AA")
	if !ok {
		t.Fatal("expected play to succeed")
	}
	if len(newHand) != 2 || newHand[0].ID != "N2" || newHand[1].ID != "S$1" {
		t.Errorf("hand after play = %v", newHand)
	}
	if len(newPlayed) != 1 || newPlayed[0].ID != "AA" {
		t.Errorf("played pile = %v, want [AA]", newPlayed)
	}
}

func TestPlayFromHandMissingCard(t *testing.T) {
	hand := []Card{{ID: "N2"}}

	newHand, newPlayed, ok := PlayFromHand(hand, nil, "N4")
	if ok {
		t.Fatal("expected play of unowned card to fail")
	}
	if len(newHand) != 1 || len(newPlayed) != 0 {
		t.Errorf("state changed on rejected play: hand=%v played=%v", newHand, newPlayed)
	}
}
