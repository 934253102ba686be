package zkboo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zkboo-go/zkboo/pkg/tape"
	"github.com/zkboo-go/zkboo/pkg/word"
)

// OpenedView is the transcript of party t+1 as carried in a proof: its
// input share bytes and its full multiplication-gate message log, which
// the verifier replays in place of recomputing that party's AND-gate
// contributions.
type OpenedView[W word.Uint] struct {
	Input    []byte
	Messages []W
}

// Proof is the complete non-interactive argument. For each repetition j
// with challenge trit t, the prover opens party t fully (its input bytes
// in PartyInputs[j] and its key in Keys[2j], from which the verifier
// recomputes everything else) and party t+1 by view (Views[j] plus its
// key in Keys[2j+1]); the third party stays hidden behind its commitment
// in Commitments[j]. Index arithmetic on parties is modulo 3 throughout.
type Proof[W word.Uint] struct {
	// PublicOutput is the claimed circuit output C(w), carried so the
	// encoded proof is self-contained; Verify checks it against the
	// output the caller supplies.
	PublicOutput []W

	PartyInputs [][]byte        // R entries, the opened party's input share bytes
	Views       []OpenedView[W] // R entries, the next party's opened view
	Keys        []tape.Key      // 2R entries: Keys[2j], Keys[2j+1]
	Commitments [][]byte        // R entries, each HashLen bytes, the hidden party's commitment
	Trits       []uint8         // R claimed challenge trits, each in {0,1,2}
}

// Encode serializes the proof to its canonical wire form: the public
// output words, then per repetition the length-prefixed party input, the
// opened view (input length-prefixed, then message count, then messages),
// the two keys, and the fixed-length commitment; finally the trit bytes
// in one run. All length prefixes are unsigned little-endian 64-bit and
// all words are little-endian.
func (p *Proof[W]) Encode() []byte {
	var buf bytes.Buffer
	buf.Write(word.EncodeWords(p.PublicOutput))
	for j := range p.PartyInputs {
		writeBytes(&buf, p.PartyInputs[j])
		writeBytes(&buf, p.Views[j].Input)
		writeWords(&buf, p.Views[j].Messages)
		buf.Write(p.Keys[2*j][:])
		buf.Write(p.Keys[2*j+1][:])
		buf.Write(p.Commitments[j])
	}
	buf.Write(p.Trits)
	return buf.Bytes()
}

// Decode parses a proof from its canonical wire form. The byte layout is
// not self-describing beyond its length prefixes, so the decoder needs
// the same Params the proof was produced under (fixing R and the
// commitment length) and the circuit's output word count.
func Decode[W word.Uint](b []byte, params Params, outputLen int) (*Proof[W], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if outputLen < 0 {
		return nil, fmt.Errorf("%w: negative output length %d", ErrSerialization, outputLen)
	}
	r := bytes.NewReader(b)
	reps := params.Repetitions()

	p := &Proof[W]{
		PartyInputs: make([][]byte, reps),
		Views:       make([]OpenedView[W], reps),
		Keys:        make([]tape.Key, 2*reps),
		Commitments: make([][]byte, reps),
		Trits:       make([]uint8, reps),
	}

	bw := word.ByteWidth[W]()
	outRaw := make([]byte, outputLen*bw)
	if _, err := io.ReadFull(r, outRaw); err != nil {
		return nil, fmt.Errorf("%w: public output: %v", ErrSerialization, err)
	}
	out, err := word.Words[W](outRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: public output: %v", ErrSerialization, err)
	}
	p.PublicOutput = out

	for j := 0; j < reps; j++ {
		if p.PartyInputs[j], err = readBytes(r); err != nil {
			return nil, fmt.Errorf("%w: repetition %d party input: %v", ErrSerialization, j, err)
		}
		if p.Views[j].Input, err = readBytes(r); err != nil {
			return nil, fmt.Errorf("%w: repetition %d view input: %v", ErrSerialization, j, err)
		}
		if p.Views[j].Messages, err = readWords[W](r); err != nil {
			return nil, fmt.Errorf("%w: repetition %d view messages: %v", ErrSerialization, j, err)
		}
		if _, err := io.ReadFull(r, p.Keys[2*j][:]); err != nil {
			return nil, fmt.Errorf("%w: repetition %d first key: %v", ErrSerialization, j, err)
		}
		if _, err := io.ReadFull(r, p.Keys[2*j+1][:]); err != nil {
			return nil, fmt.Errorf("%w: repetition %d second key: %v", ErrSerialization, j, err)
		}
		c := make([]byte, params.HashLen)
		if _, err := io.ReadFull(r, c); err != nil {
			return nil, fmt.Errorf("%w: repetition %d commitment: %v", ErrSerialization, j, err)
		}
		p.Commitments[j] = c
	}

	if _, err := io.ReadFull(r, p.Trits); err != nil {
		return nil, fmt.Errorf("%w: trits: %v", ErrSerialization, err)
	}
	for j, t := range p.Trits {
		if t > 2 {
			return nil, fmt.Errorf("%w: trit %d has value %d", ErrSerialization, j, t)
		}
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerialization, r.Len())
	}
	return p, nil
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUint64(buf, uint64(len(b)))
	buf.Write(b)
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, fmt.Errorf("length prefix %d exceeds remaining %d bytes", n, r.Len())
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func writeWords[W word.Uint](buf *bytes.Buffer, ws []W) {
	writeUint64(buf, uint64(len(ws)))
	for _, w := range ws {
		buf.Write(word.Bytes(w))
	}
}

func readWords[W word.Uint](r *bytes.Reader) ([]W, error) {
	n, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	bw := word.ByteWidth[W]()
	if n > uint64(r.Len())/uint64(bw) {
		return nil, fmt.Errorf("word count %d exceeds remaining %d bytes", n, r.Len())
	}
	ws := make([]W, n)
	raw := make([]byte, bw)
	for i := uint64(0); i < n; i++ {
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, err
		}
		w, err := word.FromBytes[W](raw)
		if err != nil {
			return nil, err
		}
		ws[i] = w
	}
	return ws, nil
}
