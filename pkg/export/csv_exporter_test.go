package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"student_id", "name", "grade"},
		Rows: []map[string]string{
			{"student_id": "000123", "name": "Jane Doe", "grade": "HD"},
			{"student_id": "000456", "name": "John Roe", "grade": "Z"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "student_id,name,grade\n000123,Jane Doe,HD\n000456,John Roe,Z\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	data := Dataset{
		Headers: []string{"subject_id", "mark"},
		Rows:    []map[string]string{{"subject_id": "101", "mark": "88"}},
	}

	out, err := exporter.Render(data, "grade report")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
