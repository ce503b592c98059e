package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "file:tienda.db?_foreign_keys=on", withForeignKeys("tienda.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", withForeignKeys("file:x?mode=memory"))
	assert.Equal(t, "file:x?_foreign_keys=on", withForeignKeys("file:x"))
	assert.Equal(t, "a.db?_foreign_keys=off", withForeignKeys("a.db?_foreign_keys=off"))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%electrónica%", likePattern("ELECTRÓNICA"))
}

func TestUnicodeLower(t *testing.T) {
	assert.Equal(t, "áfrica", unicodeLower("ÁFRICA"))
	assert.Equal(t, "ñandú", unicodeLower([]byte("ÑANDÚ")))
	assert.Nil(t, unicodeLower([]byte(nil)))
	assert.Equal(t, int64(7), unicodeLower(int64(7)))
}
