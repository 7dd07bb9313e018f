package engine

import (
	"errors"
	"math/rand"
	"testing"
)

// fixedRand always picks the same index (modulo the bucket size)
type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

func newTestAssistant(t *testing.T, role Role, depth int) *Assistant {
	t.Helper()
	a, err := NewAssistant(AssistantOptions{
		Role:  role,
		Depth: depth,
		Rand:  rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("NewAssistant failed: %v", err)
	}
	return a
}

func TestRoleAndClassStrings(t *testing.T) {
	if RoleComputer.String() != "computer" || RoleHuman.String() != "human" {
		t.Errorf("role names = %q, %q", RoleComputer, RoleHuman)
	}
	if got := Role(5).String(); got != "Role(5)" {
		t.Errorf("Role(5).String() = %q", got)
	}
	tests := []struct {
		c          MoveClass
		name, abbr string
	}{
		{MoveLosing, "Losing", "L"},
		{MoveUnknown, "Unknown", "?"},
		{MoveWinning, "Winning", "W"},
		{MoveIllegal, "Illegal", " "},
		{MoveClass(9), "MoveClass(9)", " "},
		{MoveClass(-1), "MoveClass(-1)", " "},
	}
	for _, tc := range tests {
		if tc.c.String() != tc.name || tc.c.Abbr() != tc.abbr {
			t.Errorf("%d: String/Abbr = %q/%q, want %q/%q", tc.c, tc.c.String(), tc.c.Abbr(), tc.name, tc.abbr)
		}
	}
}

func TestNewAssistantValidation(t *testing.T) {
	if _, err := NewAssistant(AssistantOptions{Depth: -1}); err == nil {
		t.Error("expected error for negative depth")
	}
	if _, err := NewAssistant(AssistantOptions{Role: Role(7)}); err == nil {
		t.Error("expected error for unknown role")
	}

	a, err := NewAssistant(DefaultAssistantOptions())
	if err != nil {
		t.Fatalf("NewAssistant(defaults) failed: %v", err)
	}
	if a.Role() != RoleComputer || a.Depth() != 3 || a.Cache() == nil {
		t.Errorf("defaults: role %v depth %d cache %v", a.Role(), a.Depth(), a.Cache())
	}
}

func TestAnalyzeClassification(t *testing.T) {
	b := Board{3, 3, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	a := newTestAssistant(t, RoleComputer, 2)
	an := a.Analyze(b)

	if an.NumMoves() != 10 {
		t.Errorf("NumMoves = %d, want 10", an.NumMoves())
	}
	for _, cell := range []int{0, 1} {
		if an.Cells[cell] != MoveIllegal {
			t.Errorf("red cell %d classified %v, want Illegal", cell, an.Cells[cell])
		}
	}
	if an.Cells[2] != MoveWinning {
		t.Errorf("completing the line classified %v, want Winning", an.Cells[2])
	}
	if len(an.WinningCells)+len(an.UnknownCells)+len(an.LosingCells) != an.NumMoves() {
		t.Error("buckets do not partition the moves")
	}

	for _, m := range an.Moves {
		if an.Cells[m.Cell] != m.Class {
			t.Errorf("cell %s: Cells says %v, move says %v", m.Name(), an.Cells[m.Cell], m.Class)
		}
	}
}

func TestAnalyzeValueNegation(t *testing.T) {
	r := rand.New(rand.NewSource(21))
	for g := 0; g < 10; g++ {
		positions := randomGame(r)
		b := positions[len(positions)/2]
		if IsTerminal(b) {
			continue
		}
		a := newTestAssistant(t, RoleHuman, 3)
		for _, m := range a.Analyze(b).Moves {
			own := Solve(m.Board, 3, NewCache())
			if m.Value != own.Negate() {
				t.Fatalf("move %s of %v: value %v, child solves to %v", m.Name(), b, m.Value, own)
			}
		}
	}
}

func TestAnalyzeTerminal(t *testing.T) {
	a := newTestAssistant(t, RoleComputer, 3)
	an := a.Analyze(Board{2, 2, 2})
	if an.NumMoves() != 0 {
		t.Errorf("NumMoves = %d on finished game", an.NumMoves())
	}
	for i, c := range an.Cells {
		if c != MoveIllegal {
			t.Errorf("cell %d = %v, want Illegal", i, c)
		}
	}
	if _, _, err := a.Choose(Board{2, 2, 2}); !errors.Is(err, ErrGameOver) {
		t.Errorf("Choose error = %v, want ErrGameOver", err)
	}
}

func TestPickPolicy(t *testing.T) {
	an := &Analysis{
		Moves: []MoveWithValue{
			{Cell: 1, Class: MoveLosing},
			{Cell: 4, Class: MoveUnknown},
			{Cell: 6, Class: MoveUnknown},
			{Cell: 9, Class: MoveWinning},
		},
		WinningCells: []int{9},
		UnknownCells: []int{4, 6},
		LosingCells:  []int{1},
	}

	if m, ok := an.Pick(fixedRand(0)); !ok || m.Cell != 9 {
		t.Errorf("Pick with a winning move = %d, want 9", m.Cell)
	}

	an.WinningCells = nil
	if m, _ := an.Pick(fixedRand(1)); m.Cell != 6 {
		t.Errorf("Pick among unknown = %d, want 6", m.Cell)
	}

	an.UnknownCells = nil
	if m, _ := an.Pick(fixedRand(3)); m.Cell != 1 {
		t.Errorf("Pick among losing = %d, want 1", m.Cell)
	}

	an.LosingCells = nil
	if _, ok := an.Pick(fixedRand(0)); ok {
		t.Error("Pick with no moves should fail")
	}
}

func TestComputerTakesImmediateWin(t *testing.T) {
	b := Board{3, 3, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	for seed := int64(1); seed <= 5; seed++ {
		a, err := NewAssistant(AssistantOptions{Depth: 1, Rand: rand.New(rand.NewSource(seed))})
		if err != nil {
			t.Fatal(err)
		}
		an, next, err := a.ClassifyAndChoose(b, nil)
		if err != nil {
			t.Fatalf("ClassifyAndChoose failed: %v", err)
		}
		if len(an.WinningCells) != 1 || an.WinningCells[0] != 2 {
			t.Errorf("seed %d: winning cells = %v, want [2]", seed, an.WinningCells)
		}
		if cell := ChangedCell(b, next); cell != 2 || !IsTerminal(next) {
			t.Errorf("seed %d: chose cell %d, want the line-completing cell 2", seed, cell)
		}
	}
}

func TestComputerChoiceReproducible(t *testing.T) {
	b := Board{1, 0, 0, 0, 0, 2, 0, 0, 0, 0, 1, 0}
	choose := func() Board {
		a, err := NewAssistant(AssistantOptions{Depth: 2, Rand: rand.New(rand.NewSource(99))})
		if err != nil {
			t.Fatal(err)
		}
		_, next, err := a.ClassifyAndChoose(b, nil)
		if err != nil {
			t.Fatal(err)
		}
		return next
	}
	if first, second := choose(), choose(); first != second {
		t.Errorf("same seed chose %v then %v", first, second)
	}
}

func TestHumanAssistant(t *testing.T) {
	a := newTestAssistant(t, RoleHuman, 2)
	b := Board{3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	_, next, err := a.ClassifyAndChoose(b, MoveSourceFunc(func(an *Analysis) (int, error) {
		if an.Cells[0] != MoveIllegal {
			t.Errorf("red cell offered as %v", an.Cells[0])
		}
		return 5, nil
	}))
	if err != nil {
		t.Fatalf("legal human move failed: %v", err)
	}
	if next[5] != Green || ChangedCell(b, next) != 5 {
		t.Errorf("human move produced %v", next)
	}

	_, same, err := a.ClassifyAndChoose(b, MoveSourceFunc(func(*Analysis) (int, error) { return 0, nil }))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("illegal human move error = %v, want ErrIllegalMove", err)
	}
	if same != b {
		t.Error("board changed after an illegal move")
	}

	errQuit := errors.New("quit")
	if _, _, err := a.ClassifyAndChoose(b, MoveSourceFunc(func(*Analysis) (int, error) { return 0, errQuit })); !errors.Is(err, errQuit) {
		t.Errorf("source error = %v, want wrapped errQuit", err)
	}

	if _, _, err := a.ClassifyAndChoose(b, nil); !errors.Is(err, ErrNoMoveSource) {
		t.Errorf("nil source error = %v, want ErrNoMoveSource", err)
	}

	if _, _, err := a.ClassifyAndChoose(Board{1, 1, 1}, nil); !errors.Is(err, ErrGameOver) {
		t.Errorf("finished game error = %v, want ErrGameOver", err)
	}
}

func TestNewAssistantsPreload(t *testing.T) {
	computer, human, err := NewAssistants(AssistantsOptions{
		ComputerDepth: 3,
		HumanDepth:    2,
		Preload:       true,
		Seed:          5,
	})
	if err != nil {
		t.Fatalf("NewAssistants failed: %v", err)
	}
	if computer.Role() != RoleComputer || human.Role() != RoleHuman {
		t.Errorf("roles = %v, %v", computer.Role(), human.Role())
	}
	if computer.Cache() == human.Cache() {
		t.Error("assistants must not share a cache")
	}
	if computer.Cache().Len() == 0 {
		t.Error("three-ply preload should resolve some positions")
	}
	if human.Cache().Len() > computer.Cache().Len() {
		t.Errorf("shallower cache has %d entries, deeper has %d",
			human.Cache().Len(), computer.Cache().Len())
	}

	if _, _, err := NewAssistants(AssistantsOptions{ComputerDepth: -1}); err == nil {
		t.Error("expected error for negative computer depth")
	}
}
