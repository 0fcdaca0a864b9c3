package leveldb

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	dir, err := ioutil.TempDir("", "vaultleveldb")
	assert.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := New(dir, 16, 16, false)
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGetDelete(t *testing.T) {
	db := newTestDatabase(t)

	key := []byte("snapshot")
	value := []byte(`{"totalShares":100}`)

	exist, err := db.Has(key)
	assert.NoError(t, err)
	assert.False(t, exist)

	assert.NoError(t, db.Put(key, value))

	exist, err = db.Has(key)
	assert.NoError(t, err)
	assert.True(t, exist)

	data, err := db.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, value, data)

	assert.NoError(t, db.Delete(key))
	_, err = db.Get(key)
	assert.True(t, IsNotFoundErr(err))
}

func TestStatAndPath(t *testing.T) {
	db := newTestDatabase(t)

	assert.NotEmpty(t, db.Path())

	stat, err := db.Stat("leveldb.stats")
	assert.NoError(t, err)
	assert.NotEmpty(t, stat)
}
