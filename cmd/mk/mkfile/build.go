package mkfile

import (
	"context"
	"fmt"

	"mktools/pkg/graph"
)

// buildState is the bookkeeping of one top-level Make call.
type buildState struct {
	// visiting holds the rules on the current recursion path.
	visiting graph.Set
	// built holds finished rules; only consulted with Options.Memoize.
	built graph.Set
}

func newBuildState() *buildState {
	return &buildState{visiting: graph.NewSet(), built: graph.NewSet()}
}

// Make builds the default target. It is a no-op when no rule was defined.
func (s *Session) Make(ctx context.Context) error {
	r := s.rules.Default()
	if r == nil {
		s.log.Debug("no default target")
		return nil
	}
	return s.build(ctx, r, newBuildState())
}

// MakeTarget builds the rule named name. Unknown names are a no-op.
//
// Every prerequisite that has a rule is visited whether or not name itself
// is stale; the recipe of name runs only when it is. Without
// Options.Memoize a rule reachable along several paths is visited once per
// path. A rule already on the current path is never re-entered.
//
// Command failures are logged and otherwise ignored unless
// Options.StopOnError is set, in which case the first failure is returned
// wrapped in ErrCommandFailed.
func (s *Session) MakeTarget(ctx context.Context, name string) error {
	r := s.rules.Get(name)
	if r == nil {
		s.log.Debug("no rule", "target", name)
		return nil
	}
	return s.build(ctx, r, newBuildState())
}

func (s *Session) build(ctx context.Context, r *Rule, st *buildState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st.visiting.Has(r.Name) {
		s.log.Warn("circular dependency dropped", "target", r.Name)
		return nil
	}
	if s.opts.Memoize && st.built.Has(r.Name) {
		return nil
	}
	s.log.Debug("make", "target", r.Name)

	st.visiting.Add(r.Name)
	defer st.visiting.Remove(r.Name)

	stale, reason := s.staleness(r.Name, r.Prereqs)

	for _, p := range r.Prereqs {
		child := s.rules.Get(p)
		if child == nil {
			continue
		}
		if err := s.build(ctx, child, st); err != nil {
			return err
		}
	}

	if stale {
		s.log.Debug("out of date", "target", r.Name, "reason", reason)
		if err := s.runRecipe(ctx, r); err != nil {
			return err
		}
	}
	st.built.Add(r.Name)
	return nil
}

func (s *Session) runRecipe(ctx context.Context, r *Rule) error {
	for _, cmd := range r.Recipe {
		// Variables are expanded when the command runs, not when it is read.
		text := s.Expand(cmd.Text)

		if !cmd.Silent && (!s.opts.Quiet || s.opts.DryRun) {
			fmt.Fprintln(s.echo, text)
		}
		if s.opts.DryRun {
			continue
		}

		s.log.Debug("exec", "target", r.Name, "command", text)
		err := s.host.RunProcess(ctx, text)
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		switch {
		case cmd.Ignore:
			s.log.Debug("error ignored", "target", r.Name, "command", text, "error", err)
		case s.opts.StopOnError:
			return fmt.Errorf("target=%s command=%q: %w: %w", r.Name, text, ErrCommandFailed, err)
		default:
			s.log.Warn("command failed", "target", r.Name, "command", text, "error", err)
		}
	}
	return nil
}
