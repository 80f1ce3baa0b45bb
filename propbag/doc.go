// Package propbag implements the two property-bag shapes typed resources carry: StringBag, an
// ordered string-to-string map, and TaggedBag, an ordered string-to-tagged-value map whose values
// carry one of five fixed wire types (bool, uint, int, float, string).
//
// Both bags preserve insertion order: a key sequence alongside the lookup map, mirroring the
// CPF property format's vector-of-keys-plus-hashmap shape. Neither bag permits duplicate keys;
// add_pair-style insertion is a no-op when the key already exists.
package propbag
