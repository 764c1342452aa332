package server

import (
	"bytes"
	"encoding/base64"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// debugRecorderCapacity bounds the ring buffer to a support-bundle-sized
// window of recent ticks rather than growing without bound.
const debugRecorderCapacity = 256

// DebugRecorder keeps a bounded, lz4-compressed ring buffer of recently
// encoded FULL/SNAPSHOT payloads (SPEC_FULL §3.4). It exists purely for
// operator diagnostics — it never decodes what it stores and never feeds
// back into the simulation. Enabled only with --debug-recording; a nil
// *DebugRecorder is always safe to call into (every method no-ops).
type DebugRecorder struct {
	mu      sync.Mutex
	entries [][]byte // each entry is one lz4-compressed payload
	next    int
	filled  bool
}

// NewDebugRecorder creates an enabled recorder.
func NewDebugRecorder() *DebugRecorder {
	return &DebugRecorder{entries: make([][]byte, debugRecorderCapacity)}
}

// Record compresses payload and appends it to the ring buffer.
func (d *DebugRecorder) Record(payload []byte) {
	if d == nil {
		return
	}
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		return
	}
	if err := w.Close(); err != nil {
		return
	}

	compressed := make([]byte, buf.Len())
	copy(compressed, buf.Bytes())

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[d.next] = compressed
	d.next = (d.next + 1) % len(d.entries)
	if d.next == 0 {
		d.filled = true
	}
}

// DumpBase64 returns every recorded (still-compressed) entry, in recording
// order, each base64-encoded — a small support bundle an operator can paste
// into a bug report without shipping a raw binary blob.
func (d *DebugRecorder) DumpBase64() []string {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	count := d.next
	if d.filled {
		count = len(d.entries)
	}
	out := make([]string, 0, count)

	start := 0
	if d.filled {
		start = d.next
	}
	for i := 0; i < count; i++ {
		idx := (start + i) % len(d.entries)
		if d.entries[idx] == nil {
			continue
		}
		out = append(out, base64.StdEncoding.EncodeToString(d.entries[idx]))
	}
	return out
}
