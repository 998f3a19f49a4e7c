package notify

import (
	"fmt"

	"codeberg.org/mutker/hostwatch/internal/logger"
	"github.com/gen2brain/beeep"
)

type platformBeeper struct{}

// NewBeeper returns the platform audible-alert primitive with a console
// bell fallback.
func NewBeeper() Beeper {
	return &platformBeeper{}
}

func (*platformBeeper) Beep() error {
	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		fmt.Print("\a")
		fmt.Println("Beep triggered!")
		logger.Debug().Err(err).Msg("Audible alert unavailable, printed console bell")
	}

	return nil
}
