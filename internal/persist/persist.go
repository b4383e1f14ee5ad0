// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

// Package persist implements the canonical on-disk form of a quotient
// filter described by the qf package: (q, r, entries, raw little-endian
// words). It exists outside the qf package itself because persistence
// is a host concern, not something the filter engine does for itself.
package persist

import (
	"encoding/binary"
	"fmt"
	"io"
)

// version identifies the header layout; bump on incompatible changes.
const version = uint64(1)

// Header describes a serialized quotient filter.
type Header struct {
	Version uint64
	QBits   uint64
	RBits   uint64
	Entries uint64
	Words   uint64
}

// WriteHeader writes h followed by the given raw table words to w, all
// little-endian.
func WriteHeader(w io.Writer, h Header, words []uint64) (int64, error) {
	h.Version = version
	h.Words = uint64(len(words))
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return 0, err
	}
	n := int64(binary.Size(h))
	if err := binary.Write(w, binary.LittleEndian, words); err != nil {
		return n, err
	}
	return n + int64(len(words)*8), nil
}

// ReadHeader reads a Header and its raw table words from r.
func ReadHeader(r io.Reader) (Header, []uint64, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, nil, err
	}
	if h.Version != version {
		return Header{}, nil, fmt.Errorf("persist: unsupported version %d, expected %d", h.Version, version)
	}
	words := make([]uint64, h.Words)
	if err := binary.Read(r, binary.LittleEndian, words); err != nil {
		return Header{}, nil, err
	}
	return h, words, nil
}
