package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LauJosefsen/mysql-admin-web/internal/config"
	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// testGlobals creates a Globals struct with captured stdout/stderr
func testGlobals(format string) (*Globals, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cfg := config.Default()
	cfg.Instances = map[string]config.Instance{
		"prod": {Host: "db1", Port: 3306, User: "monitor"},
	}
	return &Globals{
		Format: format,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
	}, stdout, stderr
}

type fakeClient struct {
	snapshot    []domain.EnrichedSession
	snapshotErr error
	killErr     error
	killed      []int64
	closed      bool
}

func (f *fakeClient) Sessions(context.Context) ([]domain.Session, error) { return nil, nil }
func (f *fakeClient) EngineStatus(context.Context) (string, error)       { return "", nil }
func (f *fakeClient) Ping(context.Context) error                         { return nil }

func (f *fakeClient) Snapshot(context.Context) ([]domain.EnrichedSession, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.snapshot, nil
}

func (f *fakeClient) Kill(_ context.Context, id int64) error {
	if f.killErr != nil {
		return f.killErr
	}
	f.killed = append(f.killed, id)
	return nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

// withFakeClient swaps openClient for the duration of a test.
func withFakeClient(t *testing.T, client *fakeClient) {
	t.Helper()
	orig := openClient
	openClient = func(config.Instance) (instanceClient, error) { return client, nil }
	t.Cleanup(func() { openClient = orig })
}

func enrichedFixture() []domain.EnrichedSession {
	return []domain.EnrichedSession{
		{
			Session:     domain.Session{ID: 7, User: "batch", Command: "Query", TimeSeconds: 2},
			Transaction: &domain.TransactionDetail{ActiveSeconds: 5},
		},
		{Session: domain.Session{ID: 1, User: "app", Command: "Sleep", TimeSeconds: 30}},
	}
}

// --- Sessions Command Tests ---

func TestSessionsCmd_Run(t *testing.T) {
	t.Run("emits snapshot in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		withFakeClient(t, &fakeClient{snapshot: enrichedFixture()})

		cmd := &SessionsCmd{Instance: "prod"}
		require.NoError(t, cmd.Run(globals))

		var event map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &event))
		assert.Equal(t, "snapshot", event["type"])
		assert.Equal(t, "prod", event["instance"])
		assert.EqualValues(t, 2, event["session_count"])
		assert.EqualValues(t, 1, event["open_transactions"])
	})

	t.Run("renders table format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("table")
		withFakeClient(t, &fakeClient{snapshot: enrichedFixture()})

		cmd := &SessionsCmd{Instance: "prod"}
		require.NoError(t, cmd.Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "TRX ACTIVE")
		assert.Contains(t, out, "batch")
		assert.Contains(t, out, "2 sessions, 1 with open transactions")
	})

	t.Run("applies where filters", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		withFakeClient(t, &fakeClient{snapshot: enrichedFixture()})

		cmd := &SessionsCmd{Instance: "prod", Where: []string{"user=app"}}
		require.NoError(t, cmd.Run(globals))

		var event map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &event))
		assert.EqualValues(t, 1, event["session_count"])
		assert.EqualValues(t, 0, event["open_transactions"])
	})

	t.Run("rejects invalid where clause", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		withFakeClient(t, &fakeClient{snapshot: enrichedFixture()})

		cmd := &SessionsCmd{Instance: "prod", Where: []string{"nonsense"}}
		err := cmd.Run(globals)
		require.Error(t, err)
		assert.Contains(t, stdout.String(), "INVALID_WHERE")
	})

	t.Run("reports snapshot failure", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		withFakeClient(t, &fakeClient{snapshotErr: errors.New("connection refused")})

		cmd := &SessionsCmd{Instance: "prod"}
		err := cmd.Run(globals)
		require.Error(t, err)

		var event map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &event))
		assert.Equal(t, "error", event["type"])
		assert.Equal(t, "SNAPSHOT_FAILED", event["code"])
	})

	t.Run("rejects unknown instance", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		cmd := &SessionsCmd{Instance: "nope"}
		err := cmd.Run(globals)
		require.Error(t, err)
		assert.Contains(t, stdout.String(), "INSTANCE_NOT_FOUND")
	})

	t.Run("closes the client", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		client := &fakeClient{snapshot: enrichedFixture()}
		withFakeClient(t, client)

		cmd := &SessionsCmd{Instance: "prod"}
		require.NoError(t, cmd.Run(globals))
		assert.True(t, client.closed)
	})
}

// --- Kill Command Tests ---

func TestKillCmd_Run(t *testing.T) {
	t.Run("kills and reports in NDJSON", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		client := &fakeClient{}
		withFakeClient(t, client)

		cmd := &KillCmd{ID: 42, Instance: "prod"}
		require.NoError(t, cmd.Run(globals))

		assert.Equal(t, []int64{42}, client.killed)
		var event map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &event))
		assert.Equal(t, "result", event["type"])
		assert.Equal(t, "kill", event["action"])
		assert.EqualValues(t, 42, event["session_id"])
		assert.Equal(t, true, event["ok"])
	})

	t.Run("kills and reports in text", func(t *testing.T) {
		globals, stdout, _ := testGlobals("table")
		withFakeClient(t, &fakeClient{})

		cmd := &KillCmd{ID: 42, Instance: "prod"}
		require.NoError(t, cmd.Run(globals))
		assert.Contains(t, stdout.String(), "Killed session 42 on prod")
	})

	t.Run("reports kill failure", func(t *testing.T) {
		globals, _, stderr := testGlobals("table")
		withFakeClient(t, &fakeClient{killErr: errors.New("access denied")})

		cmd := &KillCmd{ID: 42, Instance: "prod"}
		err := cmd.Run(globals)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "KILL_FAILED")
	})
}

// --- Instance Resolution Tests ---

func TestResolveInstance(t *testing.T) {
	t.Run("uses explicit name", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		name, inst, err := resolveInstance(globals, "prod")
		require.NoError(t, err)
		assert.Equal(t, "prod", name)
		assert.Equal(t, "db1", inst.Host)
	})

	t.Run("falls back to configured default", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Config.Defaults.Instance = "prod"
		name, _, err := resolveInstance(globals, "")
		require.NoError(t, err)
		assert.Equal(t, "prod", name)
	})

	t.Run("uses sole instance when nothing selected", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		name, _, err := resolveInstance(globals, "")
		require.NoError(t, err)
		assert.Equal(t, "prod", name)
	})

	t.Run("errors when ambiguous", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Config.Instances["staging"] = config.Instance{Host: "db2"}
		_, _, err := resolveInstance(globals, "")
		require.Error(t, err)
	})
}

// --- Instances Command Tests ---

func TestInstancesCmd_Run(t *testing.T) {
	t.Run("lists instances in text", func(t *testing.T) {
		globals, stdout, _ := testGlobals("table")
		globals.Config.Defaults.Instance = "prod"

		cmd := &InstancesCmd{}
		require.NoError(t, cmd.Run(globals))
		assert.Contains(t, stdout.String(), "* prod\tdb1:3306")
	})

	t.Run("lists instances in NDJSON", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		cmd := &InstancesCmd{}
		require.NoError(t, cmd.Run(globals))

		var event map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &event))
		assert.Equal(t, "instances", event["type"])
		instances := event["instances"].([]interface{})
		require.Len(t, instances, 1)
	})
}

// --- Config Command Tests ---

func TestConfigShowCmd_Run(t *testing.T) {
	t.Run("outputs config in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("table")

		cmd := &ConfigShowCmd{}
		require.NoError(t, cmd.Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "Current Configuration:")
		assert.Contains(t, out, "format:")
		assert.Contains(t, out, "Instances:")
	})

	t.Run("redacts passwords in NDJSON", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		globals.Config.Instances["prod"] = config.Instance{Host: "db1", Password: "hunter2"}

		cmd := &ConfigShowCmd{}
		require.NoError(t, cmd.Run(globals))
		assert.NotContains(t, stdout.String(), "hunter2")
	})
}

// --- Format Resolution Tests ---

func TestResolvedFormat(t *testing.T) {
	t.Run("auto falls back to ndjson for buffers", func(t *testing.T) {
		globals, _, _ := testGlobals("auto")
		assert.Equal(t, "ndjson", globals.ResolvedFormat())
	})

	t.Run("explicit format wins", func(t *testing.T) {
		globals, _, _ := testGlobals("table")
		assert.Equal(t, "table", globals.ResolvedFormat())
	})
}
