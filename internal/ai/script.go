package ai

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// scriptInputs are the globals set before every run. A script reads them
// and assigns target_x and target_y.
var scriptInputs = []string{
	"ghost", "ghost_x", "ghost_y",
	"pac_x", "pac_y", "pac_dir_x", "pac_dir_y",
	"red_x", "red_y", "scatter_x", "scatter_y",
}

// ScriptTargeting computes chase targets with a Tengo script. Whenever the
// script fails the fallback targeting is used and the failure is logged once.
type ScriptTargeting struct {
	compiled *tengo.Compiled
	fallback Targeting
	logger   *log.Logger
	failed   bool
}

// LoadScriptTargeting reads and compiles a chase script from path.
func LoadScriptTargeting(path string, fallback Targeting, logger *log.Logger) (*ScriptTargeting, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ai: read chase script: %w", err)
	}
	return CompileScriptTargeting(src, fallback, logger)
}

// CompileScriptTargeting compiles a chase script.
//
// Example script making every ghost chase Pac directly:
//
//	target_x = pac_x
//	target_y = pac_y
func CompileScriptTargeting(src []byte, fallback Targeting, logger *log.Logger) (*ScriptTargeting, error) {
	if fallback == nil {
		fallback = ArcadeTargeting{}
	}
	if logger == nil {
		logger = log.Default()
	}

	script := tengo.NewScript(src)
	for _, name := range scriptInputs {
		_ = script.Add(name, 0)
	}
	_ = script.Add("target_x", 0)
	_ = script.Add("target_y", 0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile chase script: %w", err)
	}
	return &ScriptTargeting{compiled: compiled, fallback: fallback, logger: logger}, nil
}

func (st *ScriptTargeting) ChaseTarget(s Situation) core.Vector2i {
	t, err := st.run(s)
	if err != nil {
		if !st.failed {
			st.logger.Warn("chase script failed, using arcade targets", "ghost", s.Ghost, "err", err)
			st.failed = true
		}
		return st.fallback.ChaseTarget(s)
	}
	return t
}

// Failed reports whether the script has failed at least once.
func (st *ScriptTargeting) Failed() bool { return st.failed }

// run executes the script once. Runtime panics inside the VM, such as an
// integer division by zero, are returned as errors.
func (st *ScriptTargeting) run(s Situation) (target core.Vector2i, err error) {
	defer func() {
		if r := recover(); r != nil {
			target, err = core.Vector2i{}, fmt.Errorf("ai: chase script panicked: %v", r)
		}
	}()
	dir := s.PacDir.Vector()
	values := map[string]any{
		"ghost":     s.Ghost.String(),
		"ghost_x":   s.GhostTile.X,
		"ghost_y":   s.GhostTile.Y,
		"pac_x":     s.PacTile.X,
		"pac_y":     s.PacTile.Y,
		"pac_dir_x": dir.X,
		"pac_dir_y": dir.Y,
		"red_x":     s.RedTile.X,
		"red_y":     s.RedTile.Y,
		"scatter_x": s.ScatterTile.X,
		"scatter_y": s.ScatterTile.Y,
		"target_x":  s.PacTile.X,
		"target_y":  s.PacTile.Y,
	}
	for name, v := range values {
		if err := st.compiled.Set(name, v); err != nil {
			return core.Vector2i{}, err
		}
	}
	if err := st.compiled.Run(); err != nil {
		return core.Vector2i{}, err
	}
	return core.Vec2i(st.compiled.Get("target_x").Int(), st.compiled.Get("target_y").Int()), nil
}
