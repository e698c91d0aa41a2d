package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestLogAndLoadRequests(t *testing.T) {
	dir := t.TempDir()
	p, err := NewPersistence(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, filepath.Join(dir, "nested", FileName), p.Path())

	requests, err := p.LoadRequests()
	require.NoError(t, err)
	assert.Empty(t, requests)

	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "PUSH", "key": "s", "value": "1"}))
	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "INSERT", "key": "s", "index": int64(0), "value": "0"}))
	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "EXPIRE", "key": "s", "exp": int64(1500)}))

	requests, err = p.LoadRequests()
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "PUSH", requests[0]["command"])
	assert.Equal(t, "1", requests[0]["value"])
	assert.EqualValues(t, 0, requests[1]["index"])
	assert.EqualValues(t, 1500, requests[2]["exp"])
}

func TestLogSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	p, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "ENQUEUE", "key": "q", "value": "a"}))
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.LogRequest(map[string]interface{}{"command": "PING"}), os.ErrClosed)

	p, err = Open(path)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "ENQUEUE", "key": "q", "value": "b"}))

	requests, err := p.LoadRequests()
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "a", requests[0]["value"])
	assert.Equal(t, "b", requests[1]["value"])
}

func TestLoadRequestsTruncatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	p, err := Open(path)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "RPUSH", "key": "l", "value": "x"}))

	partial, err := msgpack.Marshal(map[string]interface{}{"command": "RPUSH", "key": "l", "value": "y"})
	require.NoError(t, err)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.Write(partial[:len(partial)-3])
	require.NoError(t, err)
	require.NoError(t, f.Close())

	requests, err := p.LoadRequests()
	assert.ErrorIs(t, err, ErrCorruptLog)
	require.Len(t, requests, 1)
	assert.Equal(t, "x", requests[0]["value"])
}

func TestLoadRequestsRejectsNonMapRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data, err := msgpack.Marshal("not a request")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	p, err := Open(path)
	require.NoError(t, err)
	defer p.Close()

	requests, err := p.LoadRequests()
	assert.ErrorIs(t, err, ErrCorruptLog)
	assert.Empty(t, requests)
}

func TestRepairTailBeforeAppending(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	p, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "PUSH", "key": "k", "value": "a"}))
	require.NoError(t, p.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	goodSize := info.Size()

	// A torn map header: three entries announced, one key half written.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte{0x83, 0xa7})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	p, err = Open(path)
	require.NoError(t, err)
	defer p.Close()

	requests, loadErr := p.LoadRequests()
	require.ErrorIs(t, loadErr, ErrCorruptLog)
	require.Len(t, requests, 1)

	var corrupt *CorruptLogError
	require.ErrorAs(t, loadErr, &corrupt)
	assert.Equal(t, 2, corrupt.Record)
	assert.Equal(t, goodSize, corrupt.Offset)

	repaired, err := p.RepairTail(loadErr)
	require.NoError(t, err)
	assert.True(t, repaired)

	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "PUSH", "key": "k", "value": "b"}))
	require.NoError(t, p.LogRequest(map[string]interface{}{"command": "PUSH", "key": "k", "value": "c"}))

	requests, err = p.LoadRequests()
	require.NoError(t, err)
	require.Len(t, requests, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, requests[i]["value"])
	}
}

func TestRepairTailIgnoresOtherErrors(t *testing.T) {
	p, err := Open(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	defer p.Close()

	repaired, err := p.RepairTail(nil)
	assert.NoError(t, err)
	assert.False(t, repaired)

	repaired, err = p.RepairTail(os.ErrNotExist)
	assert.NoError(t, err)
	assert.False(t, repaired)
}
