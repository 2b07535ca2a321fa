package mkfile

import "strings"

// DirectiveKind classifies the leading keyword of a makefile line.
// Keywords that are recognized but not evaluated map to DirectiveUnsupported,
// so they are never mistaken for variable or rule names.
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota
	DirectiveIfdef
	DirectiveIfndef
	DirectiveEndif
	DirectiveInclude
	DirectiveSilentInclude
	DirectiveUnsupported
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveNone:
		return "none"
	case DirectiveIfdef:
		return "ifdef"
	case DirectiveIfndef:
		return "ifndef"
	case DirectiveEndif:
		return "endif"
	case DirectiveInclude:
		return "include"
	case DirectiveSilentInclude:
		return "sinclude"
	case DirectiveUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

var directives = map[string]DirectiveKind{
	"ifdef":    DirectiveIfdef,
	"ifndef":   DirectiveIfndef,
	"endif":    DirectiveEndif,
	"include":  DirectiveInclude,
	"-include": DirectiveSilentInclude,
	"sinclude": DirectiveSilentInclude,

	"define":   DirectiveUnsupported,
	"endef":    DirectiveUnsupported,
	"undefine": DirectiveUnsupported,
	"ifeq":     DirectiveUnsupported,
	"ifneq":    DirectiveUnsupported,
	"else":     DirectiveUnsupported,
	"override": DirectiveUnsupported,
	"export":   DirectiveUnsupported,
	"unexport": DirectiveUnsupported,
	"private":  DirectiveUnsupported,
	"vpath":    DirectiveUnsupported,
}

// LookupDirective returns the kind of keyword, or DirectiveNone.
func LookupDirective(keyword string) DirectiveKind {
	return directives[keyword]
}

// AssignOp is the operator following a name on a variable or rule line.
type AssignOp int

const (
	OpNone AssignOp = iota
	OpRecursive
	OpConditional
	OpSimple
	OpPosixSimple
	OpAppend
	OpShell
	OpRule
)

// Operators in match order. ":" comes last so it never shadows ":=" or "::=".
var operators = []struct {
	text string
	op   AssignOp
}{
	{"=", OpRecursive},
	{"?=", OpConditional},
	{":=", OpSimple},
	{"::=", OpPosixSimple},
	{"+=", OpAppend},
	{"!=", OpShell},
	{":", OpRule},
}

func (op AssignOp) String() string {
	for _, o := range operators {
		if o.op == op {
			return o.text
		}
	}
	return ""
}

// Deferred reports whether values assigned with op are stored unexpanded.
func (op AssignOp) Deferred() bool {
	return op == OpRecursive || op == OpConditional
}

// parseOperator matches an operator at the start of s and returns the
// remainder with leading blanks removed.
func parseOperator(s string) (AssignOp, string) {
	for _, o := range operators {
		if strings.HasPrefix(s, o.text) {
			return o.op, trimBlank(s[len(o.text):])
		}
	}
	return OpNone, s
}

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '.'
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '_' || c == '-' || c == '.'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitIdent splits s into its leading identifier and the rest.
func splitIdent(s string) (string, string) {
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func trimBlank(s string) string {
	return strings.TrimLeft(s, " \t")
}
