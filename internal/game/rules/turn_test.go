package rules

import "testing"

func TestPhaseTransitions(t *testing.T) {
	allowed := []struct {
		from, to Phase
	}{
		{PhaseActions, PhaseDraw},
		{PhaseDraw, PhaseInfect},
		{PhaseInfect, PhaseActions},
		{PhaseActions, PhaseGameOver},
		{PhaseDraw, PhaseGameOver},
		{PhaseInfect, PhaseGameOver},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	refused := []struct {
		from, to Phase
	}{
		{PhaseActions, PhaseInfect},
		{PhaseDraw, PhaseActions},
		{PhaseGameOver, PhaseActions},
	}
	for _, tc := range refused {
		if tc.from.CanTransition(tc.to) {
			t.Fatalf("expected %s -> %s to be refused", tc.from, tc.to)
		}
	}

	if !PhaseGameOver.Terminal() || PhaseInfect.Terminal() {
		t.Fatal("only gameover is terminal")
	}
}

func TestPhaseTextRoundTrip(t *testing.T) {
	for p := range phaseNames {
		b, err := p.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", p, err)
		}
		var back Phase
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != p {
			t.Fatalf("expected %s, got %s", p, back)
		}
	}

	var p Phase
	if err := p.UnmarshalText([]byte("upkeep")); err == nil {
		t.Fatal("expected error for unknown phase")
	}
}

func TestInfectionRateSaturates(t *testing.T) {
	idx := 0
	var rates []int
	for i := 0; i < 6; i++ {
		rates = append(rates, InfectionRate(idx))
		idx = AdvanceInfectionRate(idx)
	}
	want := []int{2, 2, 3, 4, 4, 4}
	for i := range want {
		if rates[i] != want[i] {
			t.Fatalf("step %d: expected rate %d, got %d", i, want[i], rates[i])
		}
	}
	if InfectionRate(-1) != 2 || InfectionRate(99) != 4 {
		t.Fatal("InfectionRate should clamp to the track")
	}
}

func TestRoles(t *testing.T) {
	if RoleGeneralist.BaseActions() != 5 {
		t.Fatalf("generalist should have 5 actions, got %d", RoleGeneralist.BaseActions())
	}
	for _, r := range []Role{RoleMedic, RoleDispatcher, RoleResearcher} {
		if r.BaseActions() != 4 {
			t.Fatalf("%s should have 4 actions, got %d", r, r.BaseActions())
		}
		if r.Description() == "" {
			t.Fatalf("%s has no description", r)
		}
	}

	r, err := ParseRole("")
	if err != nil || r != RoleGeneralist {
		t.Fatalf("empty role should default to generalist, got %s (%v)", r, err)
	}
	if _, err := ParseRole("Scientist"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
