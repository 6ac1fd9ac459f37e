package podcast

import "bytes"

// assembler accumulates streamed audio payloads in arrival order. Chunks are
// concatenated as received, never reordered or deduplicated, and the buffer
// is handed out exactly once on a recognized terminal event.
type assembler struct {
	buf       bytes.Buffer
	finalized bool
}

func (a *assembler) append(p []byte) {
	if a.finalized {
		return
	}
	a.buf.Write(p)
}

func (a *assembler) finalize() []byte {
	a.finalized = true
	return a.buf.Bytes()
}

func (a *assembler) size() int { return a.buf.Len() }
