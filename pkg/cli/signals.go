package cli

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/dshills/grabchars/pkg/term"
)

// exitStatus carries the session result out to Execute. The signal
// goroutine can end the process at any point, so it reads whatever was
// last stored: -1 while a session is open, the final status after.
var exitStatus atomic.Int32

var signalOnce sync.Once

// setupSignals restores the terminal and exits with the current status
// when the process is interrupted, quit or suspended. Suspension ends
// the session too: a reader stopped halfway through a keystroke has
// nothing useful to resume into.
func setupSignals() {
	signalOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, unix.SIGINT, unix.SIGQUIT, unix.SIGTSTP)
		go func() {
			<-ch
			term.RestoreSaved()
			os.Exit(int(exitStatus.Load()))
		}()
	})
}
