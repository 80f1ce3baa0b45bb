// Package typeid maps DBPF resource type IDs to short, human-readable names for pretty-printing
// and logging.
//
// Only the type IDs a reader can verify against something it has independently parsed are
// pre-registered: the texture (TXTR) and material (TXMT) block-ID checks embedded in their own
// payloads, and the compression directory's reserved type ID. Every other resource kind a caller
// wants named (property sets, hair tones, reference tables, string tables, binary indices, and
// the wider catalog of legacy simulation resource types) is registered by the caller when it
// builds its decode set, since this package has no independent way to confirm those IDs are
// correct. An unregistered ID still prints, as its zero-padded hex form.
package typeid
