/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify it
under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful, but
WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public
License along with this program. If not, see
<http://www.gnu.org/licenses/>.
*/
package compiler

import (
	"path/filepath"

	"github.com/mhcoma/sabr/internal/bytecode"
)

// controlKind identifies which control word opened or marked a frame.
type controlKind int

const (
	ctrlIf controlKind = iota
	ctrlElse
	ctrlLoop
	ctrlWhile
	ctrlBreak
	ctrlContinue
	ctrlSwitch
	ctrlCase
	ctrlPass
	ctrlFunc
	ctrlMacro
	ctrlReturn
	ctrlEnd
	ctrlImport
)

// controlMarker records one control word's kind and the bytecode
// offset it was seen at, captured before any opcode for it is emitted
// (matching the offset a backpatch later needs to either patch at, or
// jump to).
type controlMarker struct {
	kind controlKind
	pos  int
}

// controlFrame is everything opened by one opening control word
// (IF/LOOP/SWITCH/FUNC/MACRO) plus every marker seen before its
// matching END. markers[0] is always the opener.
type controlFrame struct {
	markers []controlMarker
}

// controlStack is the nesting of open control frames. Its length must
// be zero again once a source file finishes scanning; a nonzero depth
// at EOF means some opener never met its END.
type controlStack []*controlFrame

func (c *Compiler) pushFrame(kind controlKind) *controlFrame {
	f := &controlFrame{markers: []controlMarker{{kind: kind, pos: len(c.bytecode)}}}
	c.ctrl = append(c.ctrl, f)
	return f
}

func (c *Compiler) markTop(kind controlKind) (*controlFrame, error) {
	if len(c.ctrl) == 0 {
		return nil, c.errf("%s without an opening control word", controlWordName(kind))
	}
	f := c.ctrl[len(c.ctrl)-1]
	f.markers = append(f.markers, controlMarker{kind: kind, pos: len(c.bytecode)})
	return f, nil
}

// forwardMarker reassigns m to the frame one level below the current
// top — how a BREAK, CONTINUE or RETURN nested inside an IF or SWITCH
// reaches the LOOP or FUNC/MACRO frame it actually belongs to.
func (c *Compiler) forwardMarker(m controlMarker) error {
	if len(c.ctrl) < 2 {
		return c.errf("%s has no enclosing loop or function", controlWordName(m.kind))
	}
	target := c.ctrl[len(c.ctrl)-2]
	target.markers = append(target.markers, m)
	return nil
}

func controlWordName(k controlKind) string {
	for name, kind := range controlWords {
		if kind == k {
			return name
		}
	}
	return "control word"
}

func (c *Compiler) emit(op bytecode.Opcode) {
	c.bytecode = append(c.bytecode, byte(op))
}

func (c *Compiler) emitValue(op bytecode.Opcode, v bytecode.Value) {
	c.bytecode = append(c.bytecode, byte(op))
	c.bytecode = append(c.bytecode, v.Bytes()...)
}

func (c *Compiler) emitPlaceholder(op bytecode.Opcode) {
	c.emitValue(op, bytecode.Value{})
}

// patch overwrites the Size-byte operand that follows the opcode byte
// at pos.
func (c *Compiler) patch(pos int, v bytecode.Value) {
	copy(c.bytecode[pos+1:pos+1+bytecode.Size], v.Bytes())
}

// handleControlWord dispatches a recognized control word to its
// opening, marking or closing behavior. This is the backpatch engine:
// every offset written here is read back by a later END.
func (c *Compiler) handleControlWord(kind controlKind) error {
	switch kind {
	case ctrlIf:
		c.pushFrame(ctrlIf)
		c.emitPlaceholder(bytecode.OpIf)
		return nil

	case ctrlElse:
		if _, err := c.markTop(ctrlElse); err != nil {
			return err
		}
		c.emitPlaceholder(bytecode.OpJump)
		return nil

	case ctrlLoop:
		c.pushFrame(ctrlLoop)
		return nil

	case ctrlWhile:
		if _, err := c.markTop(ctrlWhile); err != nil {
			return err
		}
		c.emitPlaceholder(bytecode.OpIf)
		return nil

	case ctrlBreak, ctrlContinue:
		if _, err := c.markTop(kind); err != nil {
			return err
		}
		c.emitPlaceholder(bytecode.OpJump)
		return nil

	case ctrlSwitch:
		c.pushFrame(ctrlSwitch)
		c.emit(bytecode.OpSwitch)
		return nil

	case ctrlCase:
		if _, err := c.markTop(ctrlCase); err != nil {
			return err
		}
		c.emit(bytecode.OpCase)
		c.emit(bytecode.OpEqu)
		c.emitPlaceholder(bytecode.OpIf)
		return nil

	case ctrlPass:
		if _, err := c.markTop(ctrlPass); err != nil {
			return err
		}
		c.emitPlaceholder(bytecode.OpJump)
		return nil

	case ctrlFunc:
		c.pushFrame(ctrlFunc)
		c.emitPlaceholder(bytecode.OpFunc)
		return nil

	case ctrlMacro:
		c.pushFrame(ctrlMacro)
		c.emitPlaceholder(bytecode.OpMacro)
		return nil

	case ctrlReturn:
		if _, err := c.markTop(ctrlReturn); err != nil {
			return err
		}
		c.emit(bytecode.OpReturn)
		return nil

	case ctrlEnd:
		return c.handleEnd()

	case ctrlImport:
		return c.handleImport()
	}
	return c.errf("unhandled control word")
}

func (c *Compiler) handleEnd() error {
	if len(c.ctrl) == 0 {
		return c.errf("end without an opening control word")
	}
	frame := c.ctrl[len(c.ctrl)-1]
	first := frame.markers[0]
	endPos := len(c.bytecode)

	var err error
	switch first.kind {
	case ctrlIf:
		err = c.endIf(frame, first, endPos)
	case ctrlLoop:
		err = c.endLoop(frame, first, endPos)
	case ctrlSwitch:
		err = c.endSwitch(frame, first, endPos)
	case ctrlFunc:
		err = c.endFunc(frame, first, endPos)
	case ctrlMacro:
		err = c.endMacro(frame, first, endPos)
	default:
		err = c.errf("end of an unrecognized control frame")
	}
	if err != nil {
		return err
	}
	c.ctrl = c.ctrl[:len(c.ctrl)-1]
	return nil
}

// endIf closes an IF frame: with no ELSE, the IF placeholder targets
// the current position; with one, it targets just past the ELSE's own
// jump and the ELSE targets the current position. At most one ELSE is
// allowed, and any BREAK/CONTINUE/RETURN seen inside is forwarded to
// the enclosing frame.
func (c *Compiler) endIf(frame *controlFrame, first controlMarker, endPos int) error {
	haveElse := false
	var elsePos int
	for i := 1; i < len(frame.markers); i++ {
		m := frame.markers[i]
		switch m.kind {
		case ctrlElse:
			if haveElse {
				return c.errf("if has more than one else")
			}
			haveElse = true
			elsePos = m.pos
		case ctrlBreak, ctrlContinue, ctrlReturn:
			if err := c.forwardMarker(m); err != nil {
				return err
			}
		default:
			return c.errf("invalid marker inside if")
		}
	}
	if haveElse {
		c.patch(first.pos, bytecode.Uint(uint64(elsePos+1+bytecode.Size)))
		c.patch(elsePos, bytecode.Uint(uint64(endPos)))
	} else {
		c.patch(first.pos, bytecode.Uint(uint64(endPos)))
	}
	return nil
}

// endLoop closes a LOOP frame. WHILE and BREAK both target just past
// the trailing JUMP this emits; CONTINUE targets the loop head
// (first.pos); RETURN is forwarded outward.
func (c *Compiler) endLoop(frame *controlFrame, first controlMarker, endPos int) error {
	for i := 1; i < len(frame.markers); i++ {
		m := frame.markers[i]
		switch m.kind {
		case ctrlWhile, ctrlBreak:
			c.patch(m.pos, bytecode.Uint(uint64(endPos+1+bytecode.Size)))
		case ctrlContinue:
			c.patch(m.pos, bytecode.Uint(uint64(first.pos)))
		case ctrlReturn:
			if err := c.forwardMarker(m); err != nil {
				return err
			}
		default:
			return c.errf("invalid marker inside loop")
		}
	}
	c.emitValue(bytecode.OpJump, bytecode.Uint(uint64(first.pos)))
	return nil
}

// endSwitch closes a SWITCH frame. Interior markers must be CASEs and
// PASSes, starting with a CASE, with at least one of each; forwarded
// BREAK/CONTINUE/RETURN are also allowed. Consecutive CASEs that share
// one PASS form a chain: every chain member but the last has its EQU
// rewritten to NEQ in place and its IF target set to just past the
// chain's last CASE unit (the shared body); the last CASE in the chain
// keeps EQU and targets just past its PASS's own jump. Every PASS
// targets the switch's end.
func (c *Compiler) endSwitch(frame *controlFrame, first controlMarker, endPos int) error {
	_ = first
	var caseVec, passVec []controlMarker
	chain := false
	caseExists, passExists := false, false

	for i := 1; i < len(frame.markers); i++ {
		m := frame.markers[i]
		switch m.kind {
		case ctrlCase:
			if chain {
				passVec = append(passVec, m)
			}
			caseVec = append(caseVec, m)
			chain = true
			caseExists = true
		case ctrlPass:
			chain = false
			c.patch(m.pos, bytecode.Uint(uint64(endPos)))
			passVec = append(passVec, m)
			passExists = true
		case ctrlBreak, ctrlContinue, ctrlReturn:
			if err := c.forwardMarker(m); err != nil {
				return err
			}
		default:
			return c.errf("invalid marker inside switch")
		}
	}

	if !caseExists || !passExists || len(frame.markers) < 2 || frame.markers[1].kind != ctrlCase {
		return c.errf("switch requires case ... pass")
	}
	if len(caseVec) != len(passVec) || frame.markers[len(frame.markers)-1].kind != ctrlPass {
		return c.errf("switch must end with pass")
	}

	var chainVec []controlMarker
	pi := 0
	for _, cur := range caseVec {
		if passVec[pi].kind == ctrlPass {
			if len(chainVec) > 0 {
				target := bytecode.Uint(uint64(cur.pos + bytecode.CaseUnitLen))
				for _, chainCase := range chainVec {
					c.patch(chainCase.pos+2, target)
					c.bytecode[chainCase.pos+1] = byte(bytecode.OpNeq)
				}
				chainVec = chainVec[:0]
			}
			c.patch(cur.pos+2, bytecode.Uint(uint64(passVec[pi].pos+1+bytecode.Size)))
			pi++
		} else {
			chainVec = append(chainVec, cur)
			pi++
		}
	}

	c.emit(bytecode.OpEndSwitch)
	return nil
}

// endFunc closes a FUNC frame. A FUNC body may only contain RETURNs
// (each already emitted in place); the FUNC placeholder targets just
// past the trailing RETURN this emits.
func (c *Compiler) endFunc(frame *controlFrame, first controlMarker, endPos int) error {
	for i := 1; i < len(frame.markers); i++ {
		if frame.markers[i].kind != ctrlReturn {
			return c.errf("invalid marker inside func")
		}
	}
	c.patch(first.pos, bytecode.Uint(uint64(endPos+1)))
	c.emit(bytecode.OpReturn)
	return nil
}

// endMacro closes a MACRO frame like endFunc, except every interior
// RETURN's opcode byte is rewritten to ENDMACRO in place (a macro
// expands inline, so it has no call frame to return from) and the
// trailing instruction emitted is ENDMACRO rather than RETURN.
func (c *Compiler) endMacro(frame *controlFrame, first controlMarker, endPos int) error {
	for i := 1; i < len(frame.markers); i++ {
		m := frame.markers[i]
		if m.kind != ctrlReturn {
			return c.errf("invalid marker inside macro")
		}
		c.bytecode[m.pos] = byte(bytecode.OpEndMacro)
	}
	c.patch(first.pos, bytecode.Uint(uint64(endPos+1)))
	c.emit(bytecode.OpEndMacro)
	return nil
}

// handleImport resolves the preprocessor token pushed by the most
// recent #token against the directory of the file currently being
// scanned, and recurses into it unless that path was already
// compiled. Each import consumes (pops) its token; an import with no
// preceding #token is an error.
func (c *Compiler) handleImport() error {
	if len(c.textIndexStack) == 0 {
		return c.errf("import outside of any source file")
	}
	if len(c.preproc) == 0 {
		return c.errf("import with no preceding preprocessor token")
	}
	token := c.preproc[len(c.preproc)-1]
	c.preproc = c.preproc[:len(c.preproc)-1]

	curIdx := c.textIndexStack[len(c.textIndexStack)-1]
	currentFile := c.registry.filenames[curIdx]
	importPath := filepath.Join(filepath.Dir(currentFile), token)

	canon, err := canonicalize(importPath)
	if err != nil {
		return c.errf("cannot resolve import %q: %v", token, err)
	}
	if c.registry.imported(canon) {
		return nil
	}
	return c.compileSource(importPath)
}
