package migrations

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalColumn = regexp.MustCompile(`(?i)(?:NUMERIC|DECIMAL)\(\d+,\s*(\d+)\)`)

// Las columnas de entregas guardan 4 decimales en todos los dialectos; el redondeo a 2 ocurre al agregar.
func TestMigraciones_EscalaDeEntregas(t *testing.T) {
	for _, dialect := range []string{"postgres", "mysql"} {
		raw, err := fs.ReadFile(migrationsFS, dialect+"/000002_create_milk_entries.up.sql")
		require.NoError(t, err, dialect)

		cols := decimalColumn.FindAllStringSubmatch(string(raw), -1)
		require.Len(t, cols, 4, dialect)
		for _, c := range cols {
			assert.Equal(t, "4", c[1], "%s: %s", dialect, c[0])
		}
	}
}

func TestMigraciones_MismosArchivosPorDialecto(t *testing.T) {
	var want []string
	for i, dialect := range []string{"postgres", "mysql", "sqlite"} {
		entries, err := fs.ReadDir(migrationsFS, dialect)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		if i == 0 {
			want = names
			continue
		}
		assert.Equal(t, want, names, dialect)
	}
}

func TestRun_DriverNoSoportado(t *testing.T) {
	assert.Error(t, Run("oracle", "x"))
}
