package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-galaxy/internal/render"
)

const testCatalogJSON = `[
  {
    "id": "sol",
    "name": "Sol",
    "type": "Yellow Dwarf",
    "position": {"x": "50%", "y": "25%"},
    "star_data": [{"name": "Sun", "type": "Yellow Dwarf", "size": 1, "heat": 5778}],
    "planets": [
      {"name": "Earth", "type": "Habitable Planet", "size": 1, "materials": ["Iron", "Water"], "fact": "Home."},
      {"name": "Jupiter", "type": "Gas Giant", "size": 11.2, "materials": ["Hydrogen"], "fact": "Big."}
    ]
  },
  {
    "id": "alpha-cen",
    "name": "Alpha Centauri",
    "type": "Binary Star System",
    "position": {"x": "120px", "y": 30},
    "star_data": [
      {"name": "Rigil Kentaurus", "type": "Yellow Dwarf", "size": 1.22, "heat": 5790},
      {"name": "Toliman", "type": "Orange Dwarf", "size": 0.86, "heat": 5260}
    ],
    "planets": [
      {"name": "Proxima b", "type": "Terrestrial", "size": 1.07, "materials": ["Rock"], "fact": "Close."}
    ]
  }
]`

// resetFlags restores every flag to its default so tests do not leak
// values into each other through the package-level commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with args and an isolated config dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "ls-galaxy", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "galaxy map")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "catalog", "log-level", "log-file"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"map", "system", "validate", "version", "config"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_NonTerminalPrintsMap(t *testing.T) {
	path := writeCatalog(t, "galaxy.json", testCatalogJSON)

	out, err := execute(t, "--catalog", path, "--width", "100", "--height", "40")

	require.NoError(t, err)
	assert.True(t, strings.ContainsAny(out, "✦█"), "map should draw stars:\n%s", out)
	assert.Equal(t, 40, strings.Count(out, "\n"))
}

func TestRootCmd_NonTerminalSystem(t *testing.T) {
	path := writeCatalog(t, "galaxy.json", testCatalogJSON)

	out, err := execute(t, "--catalog", path, "--system", "sol", "--format", "json")

	require.NoError(t, err)
	var export render.SceneExport
	require.NoError(t, json.Unmarshal([]byte(out), &export))
	assert.Equal(t, "system?id=sol", export.Route)
}

func TestInitialRoute(t *testing.T) {
	defer resetFlags(rootCmd)

	resetFlags(rootCmd)
	assert.Equal(t, render.GalaxyRoute, initialRoute(rootCmd))

	require.NoError(t, rootCmd.Flags().Set("system", ""))
	assert.Equal(t, "system", initialRoute(rootCmd))

	require.NoError(t, rootCmd.Flags().Set("system", "alpha cen"))
	assert.Equal(t, render.SystemRoute("alpha cen"), initialRoute(rootCmd))
}

func TestMapCmd_JSON(t *testing.T) {
	path := writeCatalog(t, "galaxy.json", testCatalogJSON)

	out, err := execute(t, "map", "--catalog", path, "--format", "json", "--width", "100", "--height", "40")

	require.NoError(t, err)
	var export render.SceneExport
	require.NoError(t, json.Unmarshal([]byte(out), &export))
	assert.Equal(t, "galaxy", export.Route)
	assert.Equal(t, 800.0, export.Width)
	assert.Equal(t, 640.0, export.Height)
	require.Len(t, export.Elements, 2)
	assert.Equal(t, "sol", export.Elements[0].ID)
	assert.Equal(t, 400.0, export.Elements[0].X)
	assert.Equal(t, 160.0, export.Elements[0].Y)
	assert.Equal(t, 120.0, export.Elements[1].X)
	assert.Equal(t, 30.0, export.Elements[1].Y)
}

func TestMapCmd_YAMLCatalog(t *testing.T) {
	yamlCatalog := `
- id: sol
  name: Sol
  type: Yellow Dwarf
  position: {x: "50%", y: "50%"}
  star_data:
    - {name: Sun, type: Yellow Dwarf, size: 1, heat: 5778}
  planets: []
`
	path := writeCatalog(t, "galaxy.yaml", yamlCatalog)

	out, err := execute(t, "map", "--catalog", path, "--format", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "route: galaxy")
	assert.Contains(t, out, "id: sol")
}

func TestMapCmd_RejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "map", "--format", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestMapCmd_MissingCatalog(t *testing.T) {
	_, err := execute(t, "map", "--catalog", filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}

func TestSystemCmd_RendersSystem(t *testing.T) {
	path := writeCatalog(t, "galaxy.json", testCatalogJSON)

	out, err := execute(t, "system", "sol", "--catalog", path, "--format", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "route: system?id=sol")
	assert.Contains(t, out, "id: planet-1")
	assert.Contains(t, out, "orbit_radius: 160")
}

func TestSystemCmd_MissingID(t *testing.T) {
	// The catalog does not exist: a missing id must not fetch.
	out, err := execute(t, "system", "--catalog", filepath.Join(t.TempDir(), "nope.json"))

	require.NoError(t, err)
	assert.Contains(t, out, render.MissingIDText)
	assert.Contains(t, out, render.BackLinkText)
}

func TestSystemCmd_NotFound(t *testing.T) {
	path := writeCatalog(t, "galaxy.json", testCatalogJSON)

	out, err := execute(t, "system", "vega", "--catalog", path)

	require.NoError(t, err)
	assert.Contains(t, out, render.NotFoundText("vega"))
}

func TestSystemCmd_TooManyArgs(t *testing.T) {
	_, err := execute(t, "system", "sol", "vega")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestValidateCmd_Summary(t *testing.T) {
	path := writeCatalog(t, "galaxy.json", testCatalogJSON)

	out, err := execute(t, "validate", "--catalog", path, "--events", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "Catalog "+path)
	assert.Contains(t, out, "Alpha Centauri")
	assert.Contains(t, out, "Total: 2 systems, 3 planets")
	assert.Contains(t, out, "catalog loaded: 2 systems")
}

func TestValidateCmd_InvalidCatalog(t *testing.T) {
	bad := `[
  {"id": "a", "name": "A", "type": "Red Dwarf", "position": {"x": "10%", "y": "10%"}, "star_data": []},
  {"id": "a", "name": "B", "type": "Red Dwarf", "position": {"x": "20%", "y": "20%"},
   "star_data": [{"name": "B", "type": "Red Dwarf", "size": 0.2, "heat": 3000}]}
]`
	path := writeCatalog(t, "bad.json", bad)

	_, err := execute(t, "validate", "--catalog", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "star_data has 0 entries")
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "ls-galaxy version test-version-1.0.0")
}

func TestConfigCmd_PathAndInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "galaxy_data.json")

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestSetup_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog = \"from-file.json\"\nlog_level = \"warn\"\n"), 0o600))

	defer func() { configPath, catalogFlag, logLevelFlag, logFileFlag = "", "", "", "" }()

	configPath = cfgPath
	e, err := setup(false)
	require.NoError(t, err)
	assert.Equal(t, "from-file.json", e.cfg.Catalog)
	assert.Equal(t, "warn", e.cfg.LogLevel)
	e.closeLog()

	catalogFlag = "override.json"
	logLevelFlag = "debug"
	logFileFlag = filepath.Join(dir, "galaxy.log")
	e, err = setup(true)
	require.NoError(t, err)
	defer e.closeLog()
	assert.Equal(t, "override.json", e.cfg.Catalog)
	assert.Equal(t, "override.json", e.provider.Name())
	assert.Equal(t, "debug", e.cfg.LogLevel)

	e.logger.Info("hello")
	data, err := os.ReadFile(logFileFlag)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestSetup_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cell_width = -1.0\n"), 0o600))

	defer func() { configPath = "" }()
	configPath = cfgPath

	_, err := setup(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
