package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string                           { return g.id }
func (g fakeGame) Title() string                        { return "Fake " + g.id }
func (g fakeGame) Reset(core.RuntimeConfig)             {}
func (g fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g fakeGame) Render(*core.Screen)                  {}
func (g fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_fake", func() Game { return fakeGame{id: "zz_fake"} })
	Register("aa_fake", func() Game { return fakeGame{id: "aa_fake"} })

	if !Exists("zz_fake") || Exists("missing") {
		t.Fatal("Exists() reports wrong membership")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "aa_fake" && info.Title != "Fake aa_fake" {
			t.Errorf("title = %q", info.Title)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("List() not sorted: %v", ids)
		}
	}

	g, err := Create("zz_fake")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_fake" {
		t.Errorf("created ID = %q", g.ID())
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("Create() error = %v, want ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_fake", func() Game { return fakeGame{id: "dup_fake"} })
	defer func() {
		if recover() == nil {
			t.Fatal("second Register() did not panic")
		}
	}()
	Register("dup_fake", func() Game { return fakeGame{id: "dup_fake"} })
}
