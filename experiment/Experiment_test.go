package experiment

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/rocketlander/agent"
	_ "github.com/samuelfneumann/rocketlander/agent/autopilot"
	_ "github.com/samuelfneumann/rocketlander/agent/random"
	"github.com/samuelfneumann/rocketlander/environment/rocket"
	"github.com/samuelfneumann/rocketlander/experiment/tracker"
)

// events returns the JSON log events in buf with the given message
func events(t *testing.T, buf *bytes.Buffer, msg string) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var event map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("could not decode log line %q: %v", scanner.Text(), err)
		}
		if event["message"] == msg {
			out = append(out, event)
		}
	}
	return out
}

func TestOnline(t *testing.T) {
	dir := t.TempDir()

	c := DefaultConfig()
	c.MaxSteps = uint(3 * rocket.DefaultEpisodeSteps / 2)
	c.ReturnFile = filepath.Join(dir, "return.bin")
	c.LengthFile = filepath.Join(dir, "length.bin")
	c.DatabaseFile = filepath.Join(dir, "episodes.db")
	c.LogLevel = "info"
	c.PrettyLog = false

	var buf bytes.Buffer
	log, err := c.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}

	exp, err := c.CreateExp(log)
	if err != nil {
		t.Fatal(err)
	}
	if err := exp.Run(); err != nil {
		t.Fatal(err)
	}
	if err := exp.Save(); err != nil {
		t.Fatal(err)
	}

	online := exp.(*Online)
	if online.Steps() != c.MaxSteps {
		t.Errorf("steps = %v, want %v", online.Steps(), c.MaxSteps)
	}
	if online.Episodes() < 1 {
		t.Fatalf("no episodes finished in %v steps", c.MaxSteps)
	}

	returns, err := tracker.LoadData(c.ReturnFile)
	if err != nil {
		t.Fatal(err)
	}
	lengths, err := tracker.LoadEpisodeLengths(c.LengthFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(returns) != online.Episodes() || len(lengths) != online.Episodes() {
		t.Fatalf("saved %v returns and %v lengths for %v episodes",
			len(returns), len(lengths), online.Episodes())
	}

	logged := events(t, &buf, "episode finished")
	if len(logged) != online.Episodes() {
		t.Fatalf("logged %v episodes, want %v", len(logged),
			online.Episodes())
	}
	for i, event := range logged {
		if event["return"] != returns[i] {
			t.Errorf("episode %v: logged return %v, saved %v", i,
				event["return"], returns[i])
		}
		if event["steps"] != float64(lengths[i]) {
			t.Errorf("episode %v: logged steps %v, saved %v", i,
				event["steps"], lengths[i])
		}
		if _, ok := event["outcome"]; !ok {
			t.Errorf("episode %v: no outcome logged", i)
		}
	}

	db, err := tracker.OpenSQLite(c.DatabaseFile)
	if err != nil {
		t.Fatal(err)
	}
	records, err := tracker.LoadRecords(db, c.Run)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != online.Episodes() {
		t.Fatalf("stored %v records, want %v", len(records),
			online.Episodes())
	}
	for i, r := range records {
		if r.Return != returns[i] || r.Steps != lengths[i] {
			t.Errorf("record %v = %+v, want return %v and %v steps", i, r,
				returns[i], lengths[i])
		}
		if r.Outcome != rocket.Landed.String() {
			t.Errorf("record %v: outcome = %v, want %v", i, r.Outcome,
				rocket.Landed)
		}
	}

	if err := exp.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestCreateExpDatabaseError(t *testing.T) {
	// A file which is not an SQLite database cannot be migrated
	path := filepath.Join(t.TempDir(), "episodes.db")
	contents := []byte("not a database, just some text long enough to " +
		"fill the header of an sqlite file and then some more")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}

	c := DefaultConfig()
	c.ReturnFile = ""
	c.DatabaseFile = path

	var buf bytes.Buffer
	log, err := c.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.CreateExp(log); err == nil {
		t.Fatalf("expected error creating experiment with database %v",
			path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, contents) {
		t.Errorf("database file modified after failed creation")
	}
}

type countingProgress struct {
	increments, displays int
}

func (c *countingProgress) Increment() { c.increments++ }
func (c *countingProgress) Display()   { c.displays++ }

func TestOnlineProgress(t *testing.T) {
	c := DefaultConfig()
	c.AgentType = agent.Random
	c.MaxSteps = 50
	c.ReturnFile = ""

	var buf bytes.Buffer
	log, err := c.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	exp, err := c.CreateExp(log)
	if err != nil {
		t.Fatal(err)
	}

	p := &countingProgress{}
	online := exp.(*Online)
	online.SetProgress(p)

	ended, err := online.RunEpisode()
	if err != nil {
		t.Fatal(err)
	}
	if !ended && online.Episodes() != 1 {
		t.Errorf("episode neither finished nor hit the step limit")
	}
	if p.increments != int(online.Steps()) || p.displays != 1 {
		t.Errorf("progress = %+v after %v steps", p, online.Steps())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"type", func(c *Config) { c.Type = "Offline" }},
		{"maxSteps", func(c *Config) { c.MaxSteps = 0 }},
		{"agent", func(c *Config) { c.AgentType = "DQN" }},
		{"logLevel", func(c *Config) { c.LogLevel = "loud" }},
		{"env", func(c *Config) { c.EnvConf.Discount = -1 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, test := range tests {
		c := DefaultConfig()
		test.modify(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%v: expected validation error", test.name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	c, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if c.MaxSteps != def.MaxSteps || c.Seed != def.Seed ||
		c.AgentType != def.AgentType {
		t.Errorf("loaded defaults %+v, want %+v", c, def)
	}
	if c.EnvConf.Physics != def.EnvConf.Physics {
		t.Errorf("physics = %+v, want %+v", c.EnvConf.Physics,
			def.EnvConf.Physics)
	}
	if len(c.EnvConf.Layout.Platforms) != 2 || c.EnvConf.Layout.Target == nil {
		t.Errorf("layout = %+v, want the default layout", c.EnvConf.Layout)
	}
	if c.EnvConf.StartX != def.EnvConf.StartX {
		t.Errorf("startX = %v, want %v", c.EnvConf.StartX,
			def.EnvConf.StartX)
	}

	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{
		"maxSteps": 500,
		"agentType": "Random",
		"agent": {"repeat": 4},
		"env": {
			"continuousActions": true,
			"physics": {"gravity": 100}
		}
	}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ROCKETLANDER_ENV_PHYSICS_MAXTHRUST", "20000")
	t.Setenv("ROCKETLANDER_LOGLEVEL", "debug")

	c, err = LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxSteps != 500 || c.AgentType != agent.Random {
		t.Errorf("maxSteps = %v, agent = %v, want 500, Random", c.MaxSteps,
			c.AgentType)
	}
	if !c.EnvConf.ContinuousActions {
		t.Errorf("continuous actions not set from file")
	}
	if c.EnvConf.Physics.Gravity != 100 {
		t.Errorf("gravity = %v, want 100", c.EnvConf.Physics.Gravity)
	}
	if c.EnvConf.Physics.MaxThrust != 20000 {
		t.Errorf("max thrust = %v, want 20000", c.EnvConf.Physics.MaxThrust)
	}
	if c.EnvConf.Physics.DragCoefficient != rocket.DragCoefficient {
		t.Errorf("drag = %v, want default %v", c.EnvConf.Physics.DragCoefficient,
			rocket.DragCoefficient)
	}
	if c.LogLevel != "debug" {
		t.Errorf("log level = %v, want debug", c.LogLevel)
	}

	agentConf, err := agent.NewConfig(c.AgentType, c.Agent)
	if err != nil {
		t.Fatal(err)
	}
	if err := agentConf.Validate(); err != nil {
		t.Errorf("agent config invalid: %v", err)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected error loading a missing file")
	}
}
