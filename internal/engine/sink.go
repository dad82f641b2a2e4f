// internal/engine/sink.go
package engine

// SystemActor is the actor name used for engine-generated notices.
const SystemActor = "System"

// Cursor is the trailing marker appended to in-flight streamed text.
const Cursor = "█"

// Sink receives every reportable event from the engine: the initial
// placeholder for a call, each streamed update, the final text, and system
// notices. A repeated messageID means "replace the earlier report in
// place"; a fresh one means "append". Calls are synchronous and must not
// block for long.
type Sink interface {
	Report(actor, content, messageID string, loading bool)
}
