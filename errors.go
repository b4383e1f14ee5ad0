// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package qf

import "errors"

// ErrInvalidParams is returned by Init/Merge when q or r are out of
// range, or q+r exceeds 64.
var ErrInvalidParams = errors.New("qf: invalid quotient/remainder widths")

// ErrAllocFailed is returned by Init/Merge when the configured
// Allocator fails to produce a buffer.
var ErrAllocFailed = errors.New("qf: allocation failed")
