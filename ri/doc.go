// SPDX-License-Identifier: GPL-3.0-or-later

// Package ri parses and serializes Resource Indicators (RI): a lenient
// superset of URI/IRI syntax that does not require exact conformance for a
// parse to succeed. Validation of the result, if any is needed, is left to
// the caller.
//
// # Entry points
//
// [Parse] and [Serialize] are the round-trip pair most callers want:
// Parse turns a string into a [Structured] value, Serialize turns it back
// into a string. [Split] and [Join] operate one level down, on the
// five-field [Parts] tuple with percent-escapes left untouched.
//
// # Kinds
//
// Every parsed indicator is assigned a [Kind] based on the markers that
// precede its authority/path: "scheme://" is [Authority], a bare "//" is
// [Relative], "scheme:" is [Absolute], the absence of any of these is
// [None], and [Amorphous] is assigned when a would-be scheme fails the
// scheme-character rule or an Absolute's netloc turns out to be all
// digits (the classic "host:port" ambiguity).
//
// # Percent-encoding
//
// Decoding is permissive: unrecognized "%xx" sequences are left exactly as
// written, recognized ones are replaced by the escaped byte, and runs of
// escaped bytes are reassembled as UTF-8. Encoding escapes only the ASCII
// control range and a small set of reserved characters that differs per
// component (user, password, host/port/path, query key, query value,
// fragment); non-ASCII characters are left as literal UTF-8, producing an
// IRI-like serialization by default. Construct a [Codec] with Strict set
// to widen every component's reserved set to the same superset, matching
// the "strict" mode of the format this package implements.
package ri
