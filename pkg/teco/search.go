package teco

import "bytes"

// Search command plumbing. The matching engine itself is the Searcher
// collaborator; this file owns argument handling, the last-search
// string, failure semantics, and search-and-replace sequencing.

// LiteralSearcher is the default search engine: plain byte matching,
// case-folded unless exact is set.
type LiteralSearcher struct{}

// Search implements Searcher.
func (LiteralSearcher) Search(b Buffer, pattern []byte, start, end int, exact bool) (int, int, bool) {
	forward := start <= end
	lo, hi := start, end
	if !forward {
		lo, hi = end, start
	}
	if lo < 0 {
		lo = 0
	}
	if hi > b.Size() {
		hi = b.Size()
	}
	if hi-lo < len(pattern) || len(pattern) == 0 {
		return 0, 0, false
	}

	text := b.Text(lo, hi)
	pat := pattern
	if !exact {
		text = bytes.ToUpper(append([]byte(nil), text...))
		pat = bytes.ToUpper(append([]byte(nil), pattern...))
	}

	var off int
	if forward {
		off = bytes.Index(text, pat)
	} else {
		off = bytes.LastIndex(text, pat)
	}
	if off < 0 {
		return 0, 0, false
	}
	return lo + off, len(pattern), true
}

// setPattern installs the command's text argument as the search string,
// or reuses the previous one when the argument is empty.
func (ip *Interpreter) setPattern(cmd *cmdBlock) ([]byte, error) {
	if cmd.text1.len() != 0 {
		ip.lastSearch = append(ip.lastSearch[:0], cmd.text1.data...)
	}
	if len(ip.lastSearch) == 0 {
		return nil, tecoErrStr(ErrSRH, "")
	}
	return ip.lastSearch, nil
}

// exactMode reports whether matching should be case-sensitive (^X flag).
func (ip *Interpreter) exactMode() bool {
	return ip.flags.searchMode != 0
}

// searchCount looks for the count-th occurrence of pattern, forward or
// backward from dot, within [lo, hi]. On success dot moves past the
// match and ^S records its length.
func (ip *Interpreter) searchCount(pattern []byte, count int, forward bool, lo, hi int) bool {
	start := ip.buf.Dot()
	for ; count > 0; count-- {
		var pos, length int
		var found bool
		if forward {
			pos, length, found = ip.search.Search(ip.buf, pattern, start, hi, ip.exactMode())
		} else {
			pos, length, found = ip.search.Search(ip.buf, pattern, start, lo, ip.exactMode())
		}
		if !found {
			return false
		}
		ip.buf.SetDot(pos + length)
		ip.matchLen = -length
		if forward {
			start = pos + length
		} else {
			start = pos
		}
	}
	return true
}

// searchDone applies the common success/failure protocol: the colon
// forms push a truth value; a bare failure resets dot (unless the ED
// keep-dot bit is set) and raises ?SRH.
func (ip *Interpreter) searchDone(cmd *cmdBlock, pattern []byte, found bool) error {
	if cmd.colon || cmd.dcolon {
		ip.pushSuccess(found)
		return nil
	}
	if found {
		return nil
	}
	if ip.flags.ed&EdKeepDot == 0 {
		ip.buf.SetDot(0)
	}
	return tecoErrStr(ErrSRH, string(pattern))
}

// execS is the in-buffer search: nStext, bounded m,nStext, and the
// anchored ::Stext comparison.
func (ip *Interpreter) execS(cmd *cmdBlock) error {
	pattern, err := ip.setPattern(cmd)
	if err != nil {
		return err
	}

	if cmd.dcolon {
		// Anchored comparison at dot.
		dot := ip.buf.Dot()
		pos, length, found := ip.search.Search(ip.buf, pattern, dot, dot+len(pattern), ip.exactMode())
		ok := found && pos == dot
		if ok {
			ip.buf.SetDot(pos + length)
			ip.matchLen = -length
		}
		ip.pushSuccess(ok)
		return nil
	}

	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	if n == 0 {
		return tecoErr(ErrISA)
	}

	lo, hi := 0, ip.buf.Size()
	if cmd.mSet {
		lo, hi = cmd.mArg, cmd.nArg
		n = 1
	}

	var found bool
	if n > 0 {
		found = ip.searchCount(pattern, n, true, lo, hi)
	} else {
		found = ip.searchCount(pattern, -n, false, lo, hi)
	}
	return ip.searchDone(cmd, pattern, found)
}

// replaceMatch deletes the last match and inserts text in its place.
func (ip *Interpreter) replaceMatch(text []byte) error {
	if err := ip.buf.Delete(ip.matchLen); err != nil {
		return err
	}
	if len(text) != 0 {
		if err := ip.buf.Insert(text); err != nil {
			return err
		}
	}
	ip.matchLen = -len(text)
	return nil
}

// execFS searches and replaces the match with the second text argument.
func (ip *Interpreter) execFS(cmd *cmdBlock) error {
	pattern, err := ip.setPattern(cmd)
	if err != nil {
		return err
	}
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	if n == 0 {
		return tecoErr(ErrISA)
	}
	var found bool
	if n > 0 {
		found = ip.searchCount(pattern, n, true, 0, ip.buf.Size())
	} else {
		found = ip.searchCount(pattern, -n, false, 0, ip.buf.Size())
	}
	if found {
		if err := ip.replaceMatch(cmd.text2.data); err != nil {
			return err
		}
	}
	return ip.searchDone(cmd, pattern, found)
}

// execFD searches and deletes the match.
func (ip *Interpreter) execFD(cmd *cmdBlock) error {
	pattern, err := ip.setPattern(cmd)
	if err != nil {
		return err
	}
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	if n == 0 {
		return tecoErr(ErrISA)
	}
	found := ip.searchCount(pattern, abs(n), n > 0, 0, ip.buf.Size())
	if found {
		if err := ip.replaceMatch(nil); err != nil {
			return err
		}
	}
	return ip.searchDone(cmd, pattern, found)
}

// execFK searches and kills everything between the old dot and the
// match, leaving the match itself in place.
func (ip *Interpreter) execFK(cmd *cmdBlock) error {
	pattern, err := ip.setPattern(cmd)
	if err != nil {
		return err
	}
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	if n == 0 {
		return tecoErr(ErrISA)
	}
	from := ip.buf.Dot()
	found := ip.searchCount(pattern, abs(n), n > 0, 0, ip.buf.Size())
	if found {
		// Delete back to where the search began, leaving the match.
		start := ip.buf.Dot() + ip.matchLen
		if n > 0 {
			ip.buf.SetDot(start)
			if err := ip.buf.Delete(from - start); err != nil {
				return err
			}
		} else if err := ip.buf.Delete(from - ip.buf.Dot()); err != nil {
			return err
		}
	}
	return ip.searchDone(cmd, pattern, found)
}

// execFR replaces the last match or insert with the text argument,
// without searching.
func (ip *Interpreter) execFR(cmd *cmdBlock) error {
	if err := ip.replaceMatch(cmd.text1.data); err != nil {
		return err
	}
	return nil
}

// execFB is the bounded search: m,nFBtext within the range, or nFBtext
// within n lines of dot.
func (ip *Interpreter) execFB(cmd *cmdBlock) error {
	pattern, err := ip.setPattern(cmd)
	if err != nil {
		return err
	}
	lo, hi, forward := ip.fbBounds(cmd)
	var found bool
	if forward {
		found = ip.searchCount(pattern, 1, true, lo, hi)
	} else {
		found = ip.searchCount(pattern, 1, false, lo, hi)
	}
	return ip.searchDone(cmd, pattern, found)
}

// execFC is the bounded search-and-replace.
func (ip *Interpreter) execFC(cmd *cmdBlock) error {
	pattern, err := ip.setPattern(cmd)
	if err != nil {
		return err
	}
	lo, hi, forward := ip.fbBounds(cmd)
	found := ip.searchCount(pattern, 1, forward, lo, hi)
	if found {
		if err := ip.replaceMatch(cmd.text2.data); err != nil {
			return err
		}
	}
	return ip.searchDone(cmd, pattern, found)
}

// fbBounds resolves the search range for the FB and FC commands.
func (ip *Interpreter) fbBounds(cmd *cmdBlock) (lo, hi int, forward bool) {
	dot := ip.buf.Dot()
	if cmd.mSet {
		return cmd.mArg, cmd.nArg, cmd.mArg <= cmd.nArg
	}
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	if n <= 0 {
		return dot + ip.buf.LineDelta(n), dot, false
	}
	return dot, dot + ip.buf.LineDelta(n), true
}

// crossPageSearch implements the paging searches N, _, and E_: search
// the buffer, and on failure step to the next page until input runs
// out. write selects whether outgoing pages go to the output stream.
func (ip *Interpreter) crossPageSearch(cmd *cmdBlock, write bool) (found bool, err error) {
	pattern, err := ip.setPattern(cmd)
	if err != nil {
		return false, err
	}
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	if n == 0 {
		return false, tecoErr(ErrISA)
	}
	if n < 0 {
		return false, tecoErr(ErrISA) // backward paging search is meaningless
	}

	for {
		// Count matches one at a time so that the remaining occurrences
		// carry over to the next page.
		for n > 0 && ip.searchCount(pattern, 1, true, 0, ip.buf.Size()) {
			n--
		}
		if n == 0 {
			return true, nil
		}
		if ip.files.AtEOF() {
			return false, nil
		}
		if write {
			if err := ip.writeWholeBuffer(); err != nil {
				return false, err
			}
		}
		if _, err := ip.yank(); err != nil {
			return false, err
		}
	}
}

// execN searches across pages, writing passed pages to the output.
func (ip *Interpreter) execN(cmd *cmdBlock) error {
	found, err := ip.crossPageSearch(cmd, true)
	if err != nil {
		return err
	}
	return ip.searchDone(cmd, ip.lastSearch, found)
}

// execUbar (_) searches across pages, discarding passed pages.
func (ip *Interpreter) execUbar(cmd *cmdBlock) error {
	found, err := ip.crossPageSearch(cmd, false)
	if err != nil {
		return err
	}
	return ip.searchDone(cmd, ip.lastSearch, found)
}

// execEUbar (E_) is the discard-page search retained for compatibility
// with the paper-tape era: identical to _ here.
func (ip *Interpreter) execEUbar(cmd *cmdBlock) error {
	return ip.execUbar(cmd)
}

// execFN searches across pages and replaces the match.
func (ip *Interpreter) execFN(cmd *cmdBlock) error {
	found, err := ip.crossPageSearch(cmd, true)
	if err != nil {
		return err
	}
	if found {
		if err := ip.replaceMatch(cmd.text2.data); err != nil {
			return err
		}
	}
	return ip.searchDone(cmd, ip.lastSearch, found)
}

// execFUbar is the discard-page search-and-replace.
func (ip *Interpreter) execFUbar(cmd *cmdBlock) error {
	found, err := ip.crossPageSearch(cmd, false)
	if err != nil {
		return err
	}
	if found {
		if err := ip.replaceMatch(cmd.text2.data); err != nil {
			return err
		}
	}
	return ip.searchDone(cmd, ip.lastSearch, found)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
