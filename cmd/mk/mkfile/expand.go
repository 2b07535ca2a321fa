package mkfile

import "strings"

// Variable looks name up in the store, falling back to the host
// environment. An environment hit is remembered as an immediate variable.
func (s *Session) Variable(name string) (Variable, bool) {
	if v, ok := s.vars.Lookup(name); ok {
		return v, true
	}
	if value, ok := s.host.LookupEnv(name); ok {
		return s.vars.Define(name, value, false), true
	}
	return Variable{}, false
}

// IsDefined reports whether name is a variable or an environment variable.
func (s *Session) IsDefined(name string) bool {
	if _, ok := s.vars.Lookup(name); ok {
		return true
	}
	_, ok := s.host.LookupEnv(name)
	return ok
}

// Value returns the expanded value of name, or "" when it is undefined.
func (s *Session) Value(name string) string {
	v, ok := s.Variable(name)
	if !ok {
		return ""
	}
	return s.valueOf(v, map[string]bool{})
}

// Expand replaces every $(NAME) reference in text with the value of NAME.
// Unknown references are left as they are. A '$' followed by anything other
// than '(' is copied through together with the next character.
func (s *Session) Expand(text string) string {
	return s.expand(text, map[string]bool{})
}

func (s *Session) expand(text string, active map[string]bool) string {
	if !strings.Contains(text, "$") {
		return text
	}

	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(text) {
			b.WriteByte(c)
			break
		}
		if text[i+1] != '(' {
			b.WriteByte(c)
			b.WriteByte(text[i+1])
			i++
			continue
		}

		end := strings.IndexByte(text[i+2:], ')')
		if end < 0 {
			b.WriteString(text[i:])
			break
		}
		name := text[i+2 : i+2+end]
		i += 2 + end

		v, ok := s.Variable(name)
		if !ok {
			b.WriteString("$(" + name + ")")
			continue
		}
		if active[name] {
			s.warn("recursive variable reference", "name", name)
			b.WriteString("$(" + name + ")")
			continue
		}
		b.WriteString(s.valueOf(v, active))
	}
	return b.String()
}

func (s *Session) valueOf(v Variable, active map[string]bool) string {
	if !v.Deferred {
		return v.Value
	}
	active[v.Name] = true
	defer delete(active, v.Name)
	return s.expand(v.Value, active)
}
