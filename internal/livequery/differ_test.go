package livequery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreadDoc(id string) Document {
	return Document{ID: id, Data: map[string]interface{}{"read": false}}
}

func readDoc(id string) Document {
	return Document{ID: id, Data: map[string]interface{}{"read": true}}
}

func TestDifferEmitsOncePerNewestId(t *testing.T) {
	d := NewDiffer()
	snapshot := []Document{unreadDoc("n2"), unreadDoc("n1")}

	doc, emit := d.Observe("user:u1", snapshot)
	require.True(t, emit)
	assert.Equal(t, "n2", doc.ID)

	// Full-set replay of the identical snapshot must stay silent.
	_, emit = d.Observe("user:u1", snapshot)
	assert.False(t, emit)
	_, emit = d.Observe("user:u1", snapshot)
	assert.False(t, emit)
}

func TestDifferEmitsOnNewArrival(t *testing.T) {
	d := NewDiffer()

	_, emit := d.Observe("user:u1", []Document{unreadDoc("n1")})
	require.True(t, emit)

	doc, emit := d.Observe("user:u1", []Document{unreadDoc("n2"), unreadDoc("n1")})
	require.True(t, emit)
	assert.Equal(t, "n2", doc.ID)
}

func TestDifferSuppressesReadNewest(t *testing.T) {
	d := NewDiffer()

	_, emit := d.Observe("user:u1", []Document{readDoc("n1")})
	assert.False(t, emit)

	// The remembered id advanced anyway: the same newest id never re-alerts.
	_, emit = d.Observe("user:u1", []Document{readDoc("n1")})
	assert.False(t, emit)
}

func TestDifferMissingReadFieldCountsAsUnread(t *testing.T) {
	d := NewDiffer()

	doc, emit := d.Observe("user:u1", []Document{{ID: "n1", Data: map[string]interface{}{}}})
	require.True(t, emit)
	assert.Equal(t, "n1", doc.ID)
}

func TestDifferEmptySnapshotIsSilent(t *testing.T) {
	d := NewDiffer()

	_, emit := d.Observe("user:u1", nil)
	assert.False(t, emit)

	// An empty delivery does not forget the last id.
	_, emit = d.Observe("user:u1", []Document{unreadDoc("n1")})
	require.True(t, emit)
	_, emit = d.Observe("user:u1", []Document{unreadDoc("n1")})
	assert.False(t, emit)
}

func TestDifferStreamsAreIndependent(t *testing.T) {
	d := NewDiffer()

	_, emit := d.Observe("user:u1", []Document{unreadDoc("n1")})
	require.True(t, emit)

	_, emit = d.Observe("user:u2", []Document{unreadDoc("n1")})
	assert.True(t, emit, "per-stream memory, not global")
}

func TestDifferInstancesAreIndependent(t *testing.T) {
	oldConn := NewDiffer()
	newConn := NewDiffer()

	_, emit := oldConn.Observe("user:u1", []Document{unreadDoc("n1")})
	require.True(t, emit)

	// A fresh instance catches up once, then treats replays as seen.
	_, emit = newConn.Observe("user:u1", []Document{unreadDoc("n1")})
	assert.True(t, emit)
	_, emit = newConn.Observe("user:u1", []Document{unreadDoc("n1")})
	assert.False(t, emit)
}
