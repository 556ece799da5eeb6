package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlight-dev/ledgerlight/internal/auditlog"
	"github.com/ledgerlight-dev/ledgerlight/internal/config"
	"github.com/ledgerlight-dev/ledgerlight/internal/profile"
	"github.com/ledgerlight-dev/ledgerlight/internal/store"
)

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runCommand(t, "", "init", dir)
	require.NoError(t, err)
	return dir
}

func writeStatement(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", name), []byte(contents), 0o644))
}

func TestImport_EndToEnd(t *testing.T) {
	dir := setupProject(t)
	writeStatement(t, dir, "statement.csv",
		"Date,Description,Amount\n"+
			"05/01/2023,Coffee Shop,-3.50\n"+
			"06/01/2023,Tesco Groceries,-24.10\n")

	// Each uncategorised row asks twice: category name, then keyword
	// (enter accepts the suggested first token).
	stdin := "Eating Out\n\nGroceries\n\n"

	out, err := runCommand(t, stdin, "import", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows")
	assert.Contains(t, out, "2 categorised")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	st, err := store.Open(cfg.DatabasePath(dir))
	require.NoError(t, err)
	defer st.Close()

	txns, err := st.Transactions()
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.NotZero(t, txns[0].CategoryID)
	assert.NotZero(t, txns[1].CategoryID)

	cats, err := st.Categories()
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	mappings, err := st.Mappings()
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "coffee", mappings[0].Keyword)
	assert.Equal(t, "tesco", mappings[1].Keyword)

	// The statement is archived and the run is logged.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "statement.csv"))
	assert.NoError(t, err)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Rows)
	assert.Equal(t, 2, entries[0].Categorised)

	// A backup was taken after the batch.
	matches, err := filepath.Glob(filepath.Join(dir, "data", "backup_finance_*.bak"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestImport_UnresolvedMappingBlocksFile(t *testing.T) {
	dir := setupProject(t)
	writeStatement(t, dir, "weird.csv", "Foo,Bar\nx,y\n")

	out, err := runCommand(t, "", "import", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "unresolved column mapping")

	// The file stays in import/ for manual handling.
	_, err = os.Stat(filepath.Join(dir, "import", "weird.csv"))
	assert.NoError(t, err)
}

func TestImport_SaveProfileThenReuse(t *testing.T) {
	dir := setupProject(t)
	writeStatement(t, dir, "first.csv",
		"Transaction Date,Description,Amount\n05/01/2023,Coffee,-3.50\n")

	// Decline both prompts; categorisation is not required for profile saving.
	_, err := runCommand(t, "-\n", "import", "--root", dir, "--save-profile", "Test Bank")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	profiles := profile.NewStore(cfg.ProfilesPath(dir)).Load()
	require.Contains(t, profiles, "Test Bank")

	writeStatement(t, dir, "second.csv",
		"Transaction Date,Description,Amount\n06/01/2023,Lunch,-8.00\n")

	out, err := runCommand(t, "-\n", "import", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `using saved profile "Test Bank"`)
}

func TestImport_NothingToDo(t *testing.T) {
	dir := setupProject(t)

	out, err := runCommand(t, "", "import", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No statement files")
}

func TestCategories_List(t *testing.T) {
	dir := setupProject(t)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	st, err := store.Open(cfg.DatabasePath(dir))
	require.NoError(t, err)
	_, err = st.InsertCategory("Groceries", "expense")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := runCommand(t, "", "categories", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "expense")
}
