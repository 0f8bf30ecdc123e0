// Package tableformer recognizes the row/column grid structure of a
// table crop: a ResNet-style encoder, a transformer tag decoder that
// emits an OTSL token sequence, and a bbox head that localizes each
// emitted cell, following the same inference-only, no-training-loop
// split the layoutmodel package uses for the detector.
package tableformer

// Token is an OTSL (Object Tag Sequence Language) vocabulary entry.
// The numeric values are the decoder's output-head class indices and
// MUST stay in this order: a trained checkpoint's output layer is
// indexed positionally against this table.
type Token int

const (
	TokenPad Token = iota
	TokenUnk
	TokenStart
	TokenEnd
	TokenECel
	TokenFCel
	TokenLCel
	TokenUCel
	TokenXCel
	TokenNL
	TokenCHed
	TokenRHed
	TokenSRow
)

// VocabSize is the OTSL tag transformer's output vocabulary size.
const VocabSize = 13

var tokenNames = [VocabSize]string{
	"<pad>", "<unk>", "<start>", "<end>", "ecel", "fcel", "lcel",
	"ucel", "xcel", "nl", "ched", "rhed", "srow",
}

func (t Token) String() string {
	if t < 0 || int(t) >= VocabSize {
		return "<unk>"
	}
	return tokenNames[t]
}

// IsNewCell reports whether t starts a new grid cell (as opposed to
// extending or cross-spanning a neighboring cell).
func (t Token) IsNewCell() bool {
	switch t {
	case TokenFCel, TokenECel, TokenCHed, TokenRHed, TokenSRow:
		return true
	default:
		return false
	}
}

// IsColumnHeader reports whether a new cell created by t is a column
// header.
func (t Token) IsColumnHeader() bool { return t == TokenCHed }

// IsRowHeader reports whether a new cell created by t is a row
// header.
func (t Token) IsRowHeader() bool { return t == TokenRHed || t == TokenSRow }

// savesHiddenState is the `{fcel, ecel, ched, rhed, srow, nl, ucel}`
// set from the cell-saving state machine: tokens whose decoder hidden
// state gets handed to the bbox head once skip_next_tag allows it.
func (t Token) savesHiddenState() bool {
	switch t {
	case TokenFCel, TokenECel, TokenCHed, TokenRHed, TokenSRow, TokenNL, TokenUCel:
		return true
	default:
		return false
	}
}

// resetsSkip reports whether emitting t sets skip_next_tag for the
// following step: `skip_next_tag = (token in {nl, ucel, xcel})`.
func (t Token) resetsSkip() bool {
	return t == TokenNL || t == TokenUCel || t == TokenXCel
}
