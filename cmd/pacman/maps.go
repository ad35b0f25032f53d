package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/maps"
	"github.com/vovakirdan/tui-pacman/internal/world"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List, check or export maze files",
	Long: `Work with the maze files of the XXL variant.

Custom mazes live in the directory configured under maps.custom_dir
(default ~/.pacman/maps) and use the .world format.

Examples:
  pacman maps list
  pacman maps check ./my.world
  pacman maps export ~/.pacman/maps`,
}

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List standard and custom mazes",
	Args:  cobra.NoArgs,
	RunE:  runMapsList,
}

var mapsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate maze files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMapsCheck,
}

var mapsExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the standard mazes to a directory as editable files",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsExport,
}

func init() {
	mapsCmd.AddCommand(mapsListCmd, mapsCheckCmd, mapsExportCmd)
}

func runMapsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := maps.NewLibrary(cfg.Maps.CustomDir, stderrLogger("pacman-maps"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Standard mazes:")
	for _, m := range lib.StandardMaps() {
		describeMap(cmd, m)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom mazes (%s):\n", lib.Dir())
	custom := lib.CustomMaps()
	if len(custom) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, m := range custom {
		describeMap(cmd, m)
	}
	return nil
}

func describeMap(cmd *cobra.Command, m *world.Map) {
	w, err := world.New(m)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-24s invalid: %v\n", filepath.Base(m.Source), err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %-24s %dx%d  food %d  portals %d\n",
		filepath.Base(m.Source), w.NumCols(), w.NumRows(), w.TotalFoodCount(), len(w.Portals()))
}

func runMapsCheck(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		m, err := world.LoadMap(path)
		if err == nil {
			_, err = world.New(m)
		}
		if err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d maze files invalid", failed, len(args))
	}
	return nil
}

func runMapsExport(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	std, err := maps.Standard()
	if err != nil {
		return err
	}
	for _, m := range std {
		path := filepath.Join(dir, m.Source)
		if err := writeMap(path, m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}

func writeMap(path string, m *world.Map) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Serialize(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
