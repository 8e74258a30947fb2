package lifecycle

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mhaile/hh/internal/core/config"
)

// RegisterCleanup installs marker removal for the common termination
// signals. Normal-exit removal is the caller's responsibility (defer
// MarkInactive); an uncatchable SIGKILL leaves the marker behind, which is
// exactly the case Sweep repairs later. Neither mechanism is assumed
// reliable on its own.
func RegisterCleanup(cfg *config.Config, identifier string) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		MarkInactive(cfg, identifier)
		os.Exit(0)
	}()
}
