package mkfile

import (
	"fmt"
	"strings"
)

// ProcessFile reads and interprets the makefile at path. When the file
// cannot be read the failure is logged unless silent is set, and an error
// wrapping ErrOpenMakefile is returned; state from earlier files is kept.
func (s *Session) ProcessFile(path string, silent bool) error {
	s.log.Debug("processing file", "file", path)

	data, err := s.host.ReadFile(path)
	if err != nil {
		if !silent {
			s.warn("failed to open makefile", "path", path, "error", err)
		}
		return fmt.Errorf("%w %s: %w", ErrOpenMakefile, path, err)
	}
	s.files = append(s.files, path)
	s.ProcessText(path, data)
	return nil
}

// ProcessText interprets makefile text. name is only used in diagnostics.
func (s *Session) ProcessText(name string, data []byte) {
	saved := s.pos
	defer func() { s.pos = saved }()

	s.pos = position{file: name}
	for i, line := range SplitLogicalLines(data) {
		s.pos.line = i + 1
		s.log.Debug("line", "file", name, "text", line)
		s.ProcessLine(line)
	}
}

// ProcessLine interprets one logical line.
func (s *Session) ProcessLine(line string) {
	if strings.HasPrefix(line, "\t") {
		s.recipeLine(line[1:])
		return
	}
	s.current = nil

	text := trimBlank(line)
	if text == "" || text[0] == '#' {
		return
	}
	text = stripComment(text)

	if strings.HasPrefix(text, "-include") {
		if rest := text[len("-include"):]; rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			s.include(rest, true)
			return
		}
	}

	if isIdentStart(text[0]) {
		name, rest := splitIdent(text)
		if kind := LookupDirective(name); kind != DirectiveNone {
			s.directive(kind, name, trimBlank(rest))
			return
		}
		if !s.blocks.Active() {
			return
		}
		op, value := parseOperator(trimBlank(rest))
		if op != OpNone {
			s.assign(name, op, value)
			return
		}
	} else if !s.blocks.Active() {
		return
	}

	// Anything else must be a rule whose name runs up to the first ':'.
	lhs, rhs, ok := strings.Cut(text, ":")
	if !ok {
		s.warn("malformed line", "text", line)
		return
	}
	s.defineRule(strings.TrimRight(lhs, " \t"), trimBlank(rhs))
}

func (s *Session) recipeLine(body string) {
	if !s.blocks.Active() {
		return
	}

	body = trimBlank(body)
	cmd := Command{}
	switch {
	case strings.HasPrefix(body, "@"):
		cmd.Silent = true
		body = body[1:]
	case strings.HasPrefix(body, "-"):
		cmd.Ignore = true
		body = body[1:]
	}
	cmd.Text = body

	if s.current == nil {
		s.warn("recipe line with no current rule", "text", body)
		return
	}
	if body == "" {
		return
	}
	s.log.Debug("add command", "target", s.current.Name, "command", body)
	s.current.addCommand(cmd)
}

// directive evaluates a keyword line. Conditionals and includes are
// evaluated even inside inactive blocks so that nesting stays balanced.
func (s *Session) directive(kind DirectiveKind, keyword, rest string) {
	switch kind {
	case DirectiveIfdef:
		s.blocks.Push(s.IsDefined(strings.TrimSpace(s.Expand(rest))))
	case DirectiveIfndef:
		s.blocks.Push(!s.IsDefined(strings.TrimSpace(s.Expand(rest))))
	case DirectiveEndif:
		if !s.blocks.Pop() {
			s.warn("endif without matching ifdef")
		}
	case DirectiveInclude:
		s.include(rest, false)
	case DirectiveSilentInclude:
		s.include(rest, true)
	case DirectiveUnsupported:
		s.warn("unsupported directive", "directive", keyword)
	}
}

func (s *Session) include(rest string, silent bool) {
	value := s.Expand(trimBlank(rest))
	s.log.Debug("include", "files", value)

	for _, path := range strings.Fields(value) {
		// Failures are already reported by ProcessFile; interpretation
		// of the including file continues either way.
		_ = s.ProcessFile(path, silent)
	}
}

func (s *Session) assign(name string, op AssignOp, value string) {
	switch op {
	case OpRule:
		s.defineRule(name, value)
		return
	case OpRecursive, OpConditional:
		// "?=" assigns unconditionally, like "=".
	default:
		// ":=", "::=", "+=" and "!=" all store the expanded text. "+=" does
		// not append and "!=" does not run a command.
		value = s.Expand(value)
	}
	s.log.Debug("define var", "name", name, "op", op.String(), "value", value)
	s.vars.Define(name, value, op.Deferred())
}

func (s *Session) defineRule(lhs, rhs string) {
	name := strings.TrimSpace(s.Expand(lhs))
	if name == "" {
		s.warn("malformed rule: empty target", "prereqs", rhs)
		return
	}
	prereqs := strings.Fields(s.Expand(rhs))

	if name == ".PHONY" {
		for _, p := range prereqs {
			if r := s.rules.Get(p); r != nil {
				r.Phony = true
			} else {
				s.warn("phony target has no rule yet", "target", p)
			}
		}
		return
	}

	s.log.Debug("define rule", "target", name, "prereqs", prereqs)
	s.current = s.rules.Define(name, prereqs)
}

// stripComment drops a trailing '#' comment and the blanks before it.
func stripComment(text string) string {
	i := strings.IndexByte(text, '#')
	if i < 0 {
		return text
	}
	return strings.TrimRight(text[:i], " \t")
}
