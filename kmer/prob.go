package kmer

import farm "github.com/dgryski/go-farm"

// probCounters holds Partitions shards of 2-bit saturating counters,
// hash-partitioned the way fusion/kmer_index.go partitions its
// kmer->genelist shards: the low bits of farmhash(kmer) choose the
// partition, the remaining bits choose the slot within it.
//
// The original additionally picks the partition via a BRANCHFREE
// libdivide modulo to avoid a runtime division per kmer (spec §4.E);
// no such primitive exists in this pack's dependency set (nor does the
// rest of the retrieval pack use one), and a plain `% partitions` is
// correct, just not branch-free — documented as a simplification in
// DESIGN.md rather than silently ported away.
type probCounters struct {
	partitions    int
	slotsPerShard uint64
	shards        [][]byte // each shard packs 4 2-bit counters per byte
}

func newProbCounters(partitions int, totalBits int64) *probCounters {
	slotsPerShard := uint64(totalBits) / uint64(partitions) / 2
	if slotsPerShard == 0 {
		slotsPerShard = 1
	}
	shards := make([][]byte, partitions)
	bytesPerShard := (slotsPerShard + 3) / 4
	for i := range shards {
		shards[i] = make([]byte, bytesPerShard)
	}
	return &probCounters{partitions: partitions, slotsPerShard: slotsPerShard, shards: shards}
}

func (p *probCounters) locate(km Kmer) (shard int, slot uint64) {
	h := farm.Hash64WithSeed(nil, uint64(km))
	shard = int(h % uint64(p.partitions))
	slot = (h / uint64(p.partitions)) % p.slotsPerShard
	return
}

// Increment bumps km's 2-bit counter, saturating at 3.
func (p *probCounters) Increment(km Kmer) {
	shard, slot := p.locate(km)
	byteIdx := slot / 4
	shift := uint(2 * (slot % 4))
	b := p.shards[shard]
	cur := (b[byteIdx] >> shift) & 3
	if cur < 3 {
		b[byteIdx] = (b[byteIdx] &^ (3 << shift)) | ((cur + 1) << shift)
	}
}

// Get returns km's current saturating 2-bit count (0..3).
func (p *probCounters) Get(km Kmer) uint8 {
	shard, slot := p.locate(km)
	byteIdx := slot / 4
	shift := uint(2 * (slot % 4))
	return (p.shards[shard][byteIdx] >> shift) & 3
}

// Candidate reports whether km's probabilistic count reached
// threshold (clamped to the counter's 0..3 saturation range), the
// phase-1 "passed the bloom-like filter" test of spec §4.E.
func (p *probCounters) Candidate(km Kmer, threshold int) bool {
	if threshold > 3 {
		threshold = 3
	}
	return int(p.Get(km)) >= threshold
}
