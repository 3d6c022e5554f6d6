package postgres_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"todolist/pkg/test"
)

func migrationNames(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)

	if err != nil {
		t.Fatalf("Failed to read migrations dir %s: %v", dir, err)
	}

	names := []string{}

	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

// The two gateways share a schema but not a dialect; each migration version
// must exist for both, and the postgres files must not lean on sqlite-only
// syntax.
func TestMigrationDirectoriesStayInStep(t *testing.T) {
	RegisterTestingT(t)

	root := test.ProjectRoot()
	sqliteDir := filepath.Join(root, "db", "migrations", "sqlite")
	postgresDir := filepath.Join(root, "db", "migrations", "postgres")

	sqliteNames := migrationNames(t, sqliteDir)
	postgresNames := migrationNames(t, postgresDir)

	Expect(sqliteNames).ToNot(BeEmpty())
	Expect(postgresNames).To(ConsistOf(sqliteNames))
}

func TestPostgresMigrationsUsePostgresDialect(t *testing.T) {
	RegisterTestingT(t)

	dir := filepath.Join(test.ProjectRoot(), "db", "migrations", "postgres")

	for _, name := range migrationNames(t, dir) {
		content, err := os.ReadFile(filepath.Join(dir, name))

		Expect(err).To(BeNil())

		ddl := strings.ToUpper(string(content))
		Expect(ddl).ToNot(ContainSubstring("AUTOINCREMENT"), name)
		Expect(ddl).ToNot(ContainSubstring("DEFAULT 0"), name)
	}

	todos, err := os.ReadFile(filepath.Join(dir, "000002_create_todos.up.sql"))

	Expect(err).To(BeNil())
	Expect(strings.ToUpper(string(todos))).To(ContainSubstring("BOOLEAN NOT NULL DEFAULT FALSE"))
}
