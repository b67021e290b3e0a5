//go:build !unix

package terminal

// watchResize is a no-op where SIGWINCH does not exist; resizes are
// only observed on the platforms that deliver the signal.
func (s *Session) watchResize() func() {
	return func() {}
}
