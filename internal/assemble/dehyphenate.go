// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import "strings"

const lineBreakHyphen = "-\n"

// Dehyphenate deletes every hyphen that is immediately followed by a
// newline, rejoining words split across rendered lines. Nothing is inserted
// in their place. Removal repeats until the sequence is gone, since
// deleting one occurrence can bring a new one together ("--\n\n").
func Dehyphenate(s string) string {
	for strings.Contains(s, lineBreakHyphen) {
		s = strings.ReplaceAll(s, lineBreakHyphen, "")
	}
	return s
}

// dehyphenator applies Dehyphenate across page boundaries. Trailing hyphens
// of a page are held back until the next page shows whether a newline
// follows them.
type dehyphenator struct {
	pending string
}

func (d *dehyphenator) next(text string) string {
	s := Dehyphenate(d.pending + text)
	kept := strings.TrimRight(s, "-")
	d.pending = s[len(kept):]
	return kept
}

func (d *dehyphenator) flush() string {
	p := d.pending
	d.pending = ""
	return p
}
