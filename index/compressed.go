package index

import "github.com/gosari/sari/errs"

// errCompressedNotLinked reports that CompressedSuffixTree is a named
// backend kind (spec.md §4 module map) whose compressed, succinct-rank
// representation is not part of this build: spec.md leaves its exact bit
// layout to a separate compression scheme, and no pack dependency here
// supplies a wavelet-tree or rank/select structure suitable for one.
// Rather than hand-roll a compression format no other package in this
// project can be checked against, Build/Deserialize fail fast with a
// clear BuildError naming the kind, so callers route corpora that need
// it to SuffixTree instead.
func errCompressedNotLinked() error {
	return errs.NewBuild("compressed-suffix-tree backend is not linked into this build; use SuffixTree instead")
}

func errUnknownKind(k Kind) error {
	return errs.NewBuild("index: unknown backend kind " + k.String())
}
