package weavetest

import (
	"testing"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/store/leveldb"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data. The database is closed and removed when the
// test finishes.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) authlock.CommitKVStore {
	t.Helper()
	db, err := leveldb.Open(t.TempDir())
	if err != nil {
		t.Fatalf("cannot open leveldb store: %s", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
