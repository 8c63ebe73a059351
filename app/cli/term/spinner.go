package term

import (
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// requests to a local server usually finish before this, so the spinner
// only shows up for slow ones
const spinnerShowDelay = 150 * time.Millisecond

var (
	spinnerMu    sync.Mutex
	spin         = spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(os.Stderr))
	pendingStart *time.Timer
)

// StartSpinner shows msg with a spinner if the caller is still waiting after
// a short delay.
func StartSpinner(msg string) {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if pendingStart != nil {
		pendingStart.Stop()
	}
	if msg != "" {
		spin.Suffix = " " + msg
	} else {
		spin.Suffix = ""
	}

	pendingStart = time.AfterFunc(spinnerShowDelay, func() {
		spinnerMu.Lock()
		defer spinnerMu.Unlock()
		spin.Start()
	})
}

func StopSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if pendingStart != nil {
		pendingStart.Stop()
		pendingStart = nil
	}
	if spin.Active() {
		spin.Stop()
	}
}
