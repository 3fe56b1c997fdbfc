package agent

import (
	"github.com/ndl284/pacman-ai/internal/env"
)

// Agent picks the next action given the current observation. The episode
// runner accepts anything that satisfies this.
type Agent interface {
	SelectAction(obs env.Observation) int
}
