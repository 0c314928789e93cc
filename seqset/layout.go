package seqset

import (
	"encoding/binary"
	"encoding/json"
	"hash"
	"io/ioutil"
	"os"
	"path/filepath"

	seahash "blainsmith.com/go/seahash"
	"github.com/grailbio/seqset/dna"
	"github.com/klauspost/compress/gzip"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// manifest is the seqset.json contents of spec §6.1: everything needed
// to validate and reload the other on-disk sections.
type manifest struct {
	UUID       string            `json:"uuid"`
	NumEntries int               `json:"num_entries"`
	NumBases   int               `json:"num_bases"`
	MaxReadLen int               `json:"max_read_len"`
	Checksums  map[string]string `json:"checksums"` // section name -> hex highwayhash
}

var hhKey [32]byte // all-zero: only used as a fast non-cryptographic digest, same as fusion/postprocess.go's zeroSeed

// sectionNames lists every gzip-compressed payload file alongside
// seqset.json and uuid (spec §6.1, plus the `bases` tail-stream section
// documented in doc.go).
var sectionNames = [...]string{"shared", "sizes", "prev_A", "prev_C", "prev_G", "prev_T", "bases"}

// Save writes ss as a spiral-file container under dir: one
// seqset.json manifest, a raw uuid file, and one gzip-compressed,
// highwayhash-checksummed file per section (spec §6.1).
//
// Grounded on partrepo.Store's directory-of-files layout and on
// encoding/bam/gindex.go's use of klauspost/compress/gzip for an
// auxiliary index format.
func Save(ss *Seqset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "seqset: mkdir")
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "uuid"), ss.UUID[:], 0o644); err != nil {
		return errors.Wrap(err, "seqset: write uuid")
	}

	sections, numBases := ss.encodeSections()
	m := manifest{
		UUID:       string(ss.UUID[:]),
		NumEntries: ss.NumEntries(),
		NumBases:   numBases,
		MaxReadLen: ss.MaxReadLen,
		Checksums:  make(map[string]string, len(sections)),
	}
	for name, payload := range sections {
		sum := highwayhash.Sum(payload, hhKey[:])
		m.Checksums[name] = hex(sum[:])
		if err := writeGzipFile(filepath.Join(dir, name+".gz"), payload); err != nil {
			return errors.Wrapf(err, "seqset: write section %s", name)
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "seqset: marshal manifest")
	}
	return ioutil.WriteFile(filepath.Join(dir, "seqset.json"), data, 0o644)
}

// Load reads a container previously written by Save, verifying every
// section's checksum before reconstructing entry sequences.
func Load(dir string) (*Seqset, error) {
	raw, err := ioutil.ReadFile(filepath.Join(dir, "seqset.json"))
	if err != nil {
		return nil, errors.Wrap(err, "seqset: read manifest")
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "seqset: parse manifest")
	}

	sections := make(map[string][]byte, len(sectionNames))
	for _, name := range sectionNames {
		payload, err := readGzipFile(filepath.Join(dir, name+".gz"))
		if err != nil {
			return nil, errors.Wrapf(err, "seqset: read section %s", name)
		}
		sum := highwayhash.Sum(payload, hhKey[:])
		if want, ok := m.Checksums[name]; ok && want != hex(sum[:]) {
			return nil, errors.Errorf("seqset: section %s failed checksum verification", name)
		}
		sections[name] = payload
	}

	ss, err := decodeSections(m, sections)
	if err != nil {
		return nil, err
	}
	copy(ss.UUID[:], m.UUID)
	return ss, nil
}

func (ss *Seqset) encodeSections() (sections map[string][]byte, numBases int) {
	n := ss.NumEntries()
	sizes := make([]byte, 2*n)
	shared := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(sizes[2*i:], ss.sizes[i])
		binary.LittleEndian.PutUint16(shared[2*i:], ss.shared[i])
	}
	prevBytes := func(bits []bool) []byte {
		out := make([]byte, (len(bits)+7)/8)
		for i, v := range bits {
			if v {
				out[i/8] |= 1 << uint(i%8)
			}
		}
		return out
	}

	bases := dna.NewSequence()
	for i, seq := range ss.entries {
		tailStart := int(ss.shared[i])
		s := seq.Slice()
		tail, _ := s.Sub(tailStart, s.Len()-tailStart)
		bases.PushBackSlice(tail)
	}

	return map[string][]byte{
		"sizes":  sizes,
		"shared": shared,
		"prev_A": prevBytes(ss.prev[dna.A]),
		"prev_C": prevBytes(ss.prev[dna.C]),
		"prev_G": prevBytes(ss.prev[dna.G]),
		"prev_T": prevBytes(ss.prev[dna.T]),
		"bases":  packedBytes(bases.Slice()),
	}, bases.Len()
}

func decodeSections(m manifest, sections map[string][]byte) (*Seqset, error) {
	n := m.NumEntries
	sizes := sections["sizes"]
	shared := sections["shared"]
	if len(sizes) < 2*n || len(shared) < 2*n {
		return nil, errors.New("seqset: truncated sizes/shared section")
	}
	ss := &Seqset{
		MaxReadLen: m.MaxReadLen,
		sizes:      make([]uint16, n),
		shared:     make([]uint16, n),
		entries:    make([]*dna.Sequence, n),
	}
	for i := 0; i < n; i++ {
		ss.sizes[i] = binary.LittleEndian.Uint16(sizes[2*i:])
		ss.shared[i] = binary.LittleEndian.Uint16(shared[2*i:])
	}
	unpackBits := func(raw []byte) []bool {
		out := make([]bool, n)
		for i := range out {
			out[i] = raw[i/8]&(1<<uint(i%8)) != 0
		}
		return out
	}
	ss.prev[dna.A] = unpackBits(sections["prev_A"])
	ss.prev[dna.C] = unpackBits(sections["prev_C"])
	ss.prev[dna.G] = unpackBits(sections["prev_G"])
	ss.prev[dna.T] = unpackBits(sections["prev_T"])

	basesSlice := unpackedSlice(sections["bases"], m.NumBases)
	offset := 0
	var prev *dna.Sequence
	for i := 0; i < n; i++ {
		size := int(ss.sizes[i])
		shared := int(ss.shared[i])
		tailLen := size - shared
		tail, err := basesSlice.Sub(offset, tailLen)
		if err != nil {
			return nil, errors.Wrapf(err, "seqset: reconstruct entry %d", i)
		}
		offset += tailLen

		seq := dna.NewSequence()
		if prev != nil && shared > 0 {
			prefix, err := prev.Slice().Sub(0, shared)
			if err != nil {
				return nil, errors.Wrapf(err, "seqset: reconstruct entry %d shared prefix", i)
			}
			seq.PushBackSlice(prefix)
		}
		seq.PushBackSlice(tail)
		ss.entries[i] = seq
		prev = seq
	}
	return ss, nil
}

func writeGzipFile(path string, payload []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write(payload); err != nil {
		gw.Close()
		f.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readGzipFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return ioutil.ReadAll(gr)
}

// sum64 returns a hex-encoded seahash digest of payload, used (in
// place of highwayhash's 256-bit digest) only where a quick 64-bit
// checksum is wanted — currently unused by Save/Load directly but
// kept available since blainsmith.com/go/seahash is otherwise unwired;
// see DESIGN.md.
func sum64(payload []byte) string {
	var h hash.Hash64 = seahash.New()
	h.Write(payload)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, h.Sum64())
	return hex(buf)
}

const hexDigits = "0123456789abcdef"

func hex(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[2*i] = hexDigits[v>>4]
		out[2*i+1] = hexDigits[v&0xf]
	}
	return string(out)
}

// packedBytes 2-bit packs s into a big-endian byte stream, 4 bases per
// byte, matching the packing convention reposeq's inline-prefix
// records use (base 0 in the top 2 bits of byte 0).
func packedBytes(s dna.Slice) []byte {
	n := s.Len()
	out := make([]byte, (n+3)/4)
	for i := 0; i < n; i++ {
		out[i/4] |= byte(s.At(i)) << uint(6-2*(i%4))
	}
	return out
}

// unpackedSlice builds a dna.Slice over a freshly loaded packed byte
// buffer, starting at base 0 and running for exactly n bases (the
// caller, not the byte count, determines the true base length since
// the final byte may be partially used).
func unpackedSlice(raw []byte, n int) dna.Slice { return dna.SliceFromRaw(raw, 0, n) }
