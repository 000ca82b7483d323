/*
Package orm stores protobuf models in a key value store.

The state space is split into buckets. Every bucket keeps one model type
under its own key namespace, the bucket name followed by a colon. Models
are addressed by a primary key only; secondary indexes are not supported.

	escrows := orm.NewModelBucket("escrow", &Escrow{})
	err := escrows.Put(db, key, &escrow)
	err = escrows.One(db, key, &loaded)

A bucket can be exposed to clients through a query router. Queries return
raw database entries, either the one stored under a key or all entries
sharing a key prefix.
*/
package orm
