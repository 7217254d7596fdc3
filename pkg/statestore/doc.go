// Package statestore is the persistence gateway for user-editable
// application state: flat string-keyed durable entries, one per
// credential/setting/selection field, plus one JSON-serialized entry for
// the recipient contact list.
//
// The Store interface is deliberately small (Get/Set/Delete) so state
// persistence stays injectable instead of being scattered across field
// watchers. FileStore keeps all entries in a single JSON file and writes
// through on every Set, so no edit is lost if the process dies. RedisStore
// offers the same contract backed by Redis for setups where the tool runs
// on more than one machine.
package statestore
