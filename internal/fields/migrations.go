package fields

import "github.com/forgeware/bpdecode/internal/stream"

// Migration is one applied mod-migration record: the owning mod name and
// the migration script name.
type Migration struct {
	ModName       string
	MigrationName string
}

// ReadMigrations reads a count8 of {string, string} pairs, shared by the
// library header and every blueprint-family object body (spec §6).
func ReadMigrations(r *stream.Reader) ([]Migration, error) {
	n, err := r.Count8()
	if err != nil {
		return nil, err
	}
	migrations := make([]Migration, 0, n)
	for i := 0; i < n; i++ {
		modName, err := r.String()
		if err != nil {
			return nil, err
		}
		migrationName, err := r.String()
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, Migration{ModName: modName, MigrationName: migrationName})
	}
	return migrations, nil
}
