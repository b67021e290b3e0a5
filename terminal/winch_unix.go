//go:build unix

package terminal

import (
	"os"
	"os/signal"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/sfncore/frankentui/event"
)

// watchResize forwards SIGWINCH arrivals as Resize events. The
// returned func stops the watcher.
func (s *Session) watchResize() func() {
	if !s.isTTY {
		return func() {}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGWINCH)
	done := make(chan struct{})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-sig:
				w, h, err := s.Size()
				if err != nil {
					s.log.Debug("resize size query failed", zap.Error(err))
					continue
				}
				s.inject(event.Resize{Width: w, Height: h})
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sig)
		close(done)
	}
}
