package davclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "/", CleanPath(""))
	assert.Equal(t, "/", CleanPath("/"))
	assert.Equal(t, "/cashier", CleanPath("cashier"))
	assert.Equal(t, "/cashier", CleanPath("/cashier/"))
	assert.Equal(t, "/a/b", CleanPath("a\\b"))
	assert.Equal(t, "/b", CleanPath("/a/../../b"))
	assert.Equal(t, "/cashier/x.db", JoinPath("cashier", "x.db"))
}

func TestSplitDirItems(t *testing.T) {
	assert.Equal(t, []string{"/a", "/a/b", "/a/b/c"}, splitDirItems("a/b/c/"))
	assert.Equal(t, []string{}, splitDirItems("/"))
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "/a%20b/c%23d.db", escapePath("a b/c#d.db", false))
	assert.Equal(t, "/a/", escapePath("/a", true))
	assert.Equal(t, "/", escapePath("", true))
}
