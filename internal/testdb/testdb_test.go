package testdb_test

import (
	"testing"

	"github.com/kanjisaya/kanji-srs/internal/testdb"
	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURLPrecedence(t *testing.T) {
	t.Setenv(testdb.EnvTestDatabaseURL, "")
	t.Setenv(testdb.EnvKanjiDatabaseURL, "")
	t.Setenv(testdb.EnvDatabaseURL, "")
	assert.Empty(t, testdb.GetTestDatabaseURL())

	t.Setenv(testdb.EnvDatabaseURL, "postgres://generic/db")
	assert.Equal(t, "postgres://generic/db", testdb.GetTestDatabaseURL())

	t.Setenv(testdb.EnvKanjiDatabaseURL, "postgres://app/db")
	assert.Equal(t, "postgres://app/db", testdb.GetTestDatabaseURL())

	t.Setenv(testdb.EnvTestDatabaseURL, "postgres://test/db")
	assert.Equal(t, "postgres://test/db", testdb.GetTestDatabaseURL())
}
