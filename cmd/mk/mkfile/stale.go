package mkfile

import "fmt"

// OutOfDate reports whether target must be rebuilt: some prerequisite file
// is missing, the target file is missing, or the target is older than a
// prerequisite.
func (s *Session) OutOfDate(target string, prereqs []string) bool {
	stale, _ := s.staleness(target, prereqs)
	return stale
}

// staleness is OutOfDate with a human readable reason for debug output.
func (s *Session) staleness(target string, prereqs []string) (bool, string) {
	s.log.Debug("check out of date", "target", target, "prereqs", prereqs)

	for _, p := range prereqs {
		if !s.host.FileExists(p) {
			return true, fmt.Sprintf("prerequisite %s does not exist", p)
		}
	}
	if !s.host.FileExists(target) {
		return true, "target does not exist"
	}

	mtime, err := s.host.FileModTime(target)
	if err != nil {
		return true, fmt.Sprintf("cannot stat target: %v", err)
	}
	for _, p := range prereqs {
		pt, err := s.host.FileModTime(p)
		if err != nil {
			return true, fmt.Sprintf("cannot stat %s: %v", p, err)
		}
		if mtime.Before(pt) {
			return true, fmt.Sprintf("%s is newer", p)
		}
	}
	return false, ""
}
