package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Employee Archives",
		Headers: []string{"EmpNo", "Name", "Status"},
		Rows: []map[string]string{
			{"EmpNo": "1001", "Name": "Ali Hassan", "Status": "ACTIVE"},
			{"EmpNo": "1002", "Name": "Sara Ahmed", "Status": "INACTIVE"},
		},
	}
}

func TestToCSV(t *testing.T) {
	out, err := ToCSV(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "EmpNo,Name,Status", strings.TrimSpace(lines[0]))
	require.Equal(t, "1001,Ali Hassan,ACTIVE", strings.TrimSpace(lines[1]))
	require.Equal(t, "1002,Sara Ahmed,INACTIVE", strings.TrimSpace(lines[2]))
}

func TestToCSVMissingCell(t *testing.T) {
	ds := sampleDataset()
	delete(ds.Rows[0], "Status")

	out, err := ToCSV(ds)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Equal(t, "1001,Ali Hassan,", strings.TrimSpace(lines[1]))
}

func TestToPDF(t *testing.T) {
	out, err := ToPDF(sampleDataset())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "%PDF"))
	require.Greater(t, len(out), 500)
}
