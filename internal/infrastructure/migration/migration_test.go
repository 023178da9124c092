package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsAreIdempotentAndOrdered(t *testing.T) {
	ms := Migrations()
	names := map[string]bool{}
	for _, m := range ms {
		assert.False(t, names[m.Name], "duplicate migration %s", m.Name)
		names[m.Name] = true
		assert.Contains(t, m.SQL, "IF NOT EXISTS", m.Name)
	}
	assert.Equal(t, "create_users", ms[0].Name)
	assert.Equal(t, "create_resumes", ms[1].Name)
}

func TestSlugIsUniquePerUser(t *testing.T) {
	for _, m := range Migrations() {
		if m.Name == "resumes_user_slug_unique" {
			assert.True(t, strings.Contains(m.SQL, "UNIQUE"))
			assert.Contains(t, m.SQL, "(user_id, slug)")
			return
		}
	}
	t.Fatal("slug index migration missing")
}
