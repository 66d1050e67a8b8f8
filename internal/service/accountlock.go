package service

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

// accountLocks serializes issuer operations per account. Operations on the
// same account hash to the same shard and exclude each other; distinct
// accounts almost always proceed in parallel.
type accountLocks struct {
	shards [lockShards]sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{}
}

// Lock acquires the shard for the account and returns its release func.
func (l *accountLocks) Lock(accountID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	shard := &l.shards[h.Sum32()%lockShards]
	shard.Lock()
	return shard.Unlock
}
