package excel

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDataReader_ReadCSV(t *testing.T) {
	reader := NewDataReader("inline.csv", "", quietLogger())

	raw, err := reader.ReadCSV(strings.NewReader("\ufeffCategory , Iron (mg)\nLentils,6.5\nPeas,\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Category", "Iron (mg)"}, raw.Headers)
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, []string{"6.5", ""}, raw.Column(1))
}

func TestDataReader_RejectsShortFiles(t *testing.T) {
	reader := NewDataReader("inline.csv", "", quietLogger())

	_, err := reader.ReadCSV(strings.NewReader("Category,Iron (mg)\n"))
	assert.Error(t, err)

	_, err = reader.ReadCSV(strings.NewReader("Category,Iron (mg)\nLentils,6.5,extra\n"))
	assert.Error(t, err, "rows longer than the header are malformed")
}

func TestDataReader_PadsShortRows(t *testing.T) {
	reader := NewDataReader("inline.csv", "", quietLogger())

	raw, err := reader.ReadCSV(strings.NewReader("Category,Iron (mg),Zinc (mg)\nLentils,6.5,3.3\nPeas\n"))
	require.NoError(t, err)

	require.Len(t, raw.Rows, 2)
	assert.Equal(t, []string{"Peas", "", ""}, raw.Rows[1])
}

func TestDataReader_FileTypeFromExtension(t *testing.T) {
	assert.Equal(t, "xlsx", NewDataReader("data/LEGUMES.XLSX", "", nil).fileType)
	assert.Equal(t, "csv", NewDataReader("legus_cleaned.csv", "", nil).fileType)
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader("testdata/nope.csv", "", quietLogger()).ReadData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
