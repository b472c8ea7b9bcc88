package gem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maseology/gem/flowline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHyps(t *testing.T, rows string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "hyps.csv")
	require.NoError(t, os.WriteFile(fp, []byte("surface,thickness,width\n"+rows), 0644))
	return fp
}

func TestBuildHypsometry(t *testing.T) {
	fp := writeHyps(t, "3000,50,400\n2900,45,380\n2800,0,0\n")

	surf, thick, width, err := buildHypsometry(fp, 100., flowline.Rectangular)
	require.NoError(t, err)
	assert.Equal(t, []float64{3000., 2900., 2800.}, surf)
	assert.Equal(t, []float64{50., 45., 0.}, thick)
	assert.Equal(t, []float64{400., 380., 0.}, width)
}

func TestBuildHypsometryOrdering(t *testing.T) {
	fp := writeHyps(t, "3000,50,400\n3000,45,380\n")
	_, _, _, err := buildHypsometry(fp, 100., flowline.Rectangular)
	assert.Error(t, err, "flat or rising surfaces rejected")
}

func TestBuildHypsometryNegatives(t *testing.T) {
	fp := writeHyps(t, "3000,50,400\n2900,-1,380\n")
	_, _, _, err := buildHypsometry(fp, 100., flowline.Rectangular)
	assert.Error(t, err)
}

func TestBuildHypsometryEmpty(t *testing.T) {
	fp := writeHyps(t, "")
	_, _, _, err := buildHypsometry(fp, 100., flowline.Rectangular)
	assert.Error(t, err)
}
