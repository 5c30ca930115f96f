package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
}

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%ana%`, containsPattern("ana"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}

func TestWhereBuilder(t *testing.T) {
	t.Run("término vacío no filtra", func(t *testing.T) {
		var w whereBuilder
		w.search("   ", "c.name", "c.email")
		assert.Equal(t, "", w.sql())
		assert.Empty(t, w.args)
	})

	t.Run("OR sobre columnas y AND entre condiciones", func(t *testing.T) {
		var w whereBuilder
		w.search(" ana ", "name", "email")
		w.add("status = ?", "new")
		assert.Equal(t,
			` WHERE (name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\') AND status = $2`,
			w.sql())
		assert.Equal(t, []any{"%ana%", "new"}, w.args)

		assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(0, -5))
		assert.Equal(t, []any{"%ana%", "new", 20, 0}, w.args)
	})
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/crm?sslmode=disable", migrateURL("postgres://u:p@db:5432/crm?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}
