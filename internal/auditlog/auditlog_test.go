package auditlog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	root := t.TempDir()

	first := Entry{
		Timestamp:   time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC),
		File:        "statement.csv",
		Rows:        12,
		Categorised: 9,
		Declined:    3,
		Recurring:   4,
	}
	require.NoError(t, Append(root, []Entry{first}))

	second := Entry{
		Timestamp: time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
		File:      "other.csv",
		Rows:      2,
	}
	require.NoError(t, Append(root, []Entry{second}))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "statement.csv", entries[0].File)
	assert.Equal(t, 12, entries[0].Rows)
	assert.Equal(t, 9, entries[0].Categorised)
	assert.Equal(t, 3, entries[0].Declined)
	assert.Equal(t, 4, entries[0].Recurring)
	assert.True(t, entries[0].Timestamp.Equal(first.Timestamp))

	assert.Equal(t, "other.csv", entries[1].File)
	assert.Equal(t, 0, entries[1].Categorised)
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 6 fields")
}

func TestUnmarshalEntry_BadCount(t *testing.T) {
	rec := MarshalEntry(Entry{Timestamp: time.Now(), File: "f.csv"})
	rec[colRows] = "many"
	_, err := UnmarshalEntry(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing count")
}

func TestMarshalEntry_Header(t *testing.T) {
	assert.Len(t, strings.Split(Header, ","), numFields)
}
