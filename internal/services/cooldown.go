package services

import (
	"fmt"
	"spd/internal/structures"
	"sync"
	"time"
)

// CooldownManager rate-limits the ephemeral random-stand command per
// owner. A window of zero or less disables it. State is in-memory only;
// a restart clears all cooldowns, which is acceptable for this command.
type CooldownManager struct {
	window  time.Duration
	mu      sync.Mutex
	lastUse map[string]time.Time
	now     func() time.Time
}

func NewCooldownManager(conf *structures.Config) *CooldownManager {
	return &CooldownManager{
		window:  conf.Awaken.RandomCooldown,
		lastUse: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Check reports whether the owner may act now and, on denial, the
// remaining wait in seconds. An allowed check records the use.
func (cm *CooldownManager) Check(ownerID string) (bool, int) {
	if cm.window <= 0 {
		return true, 0
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	now := cm.now()
	remaining := cm.window - now.Sub(cm.lastUse[ownerID])
	if remaining > 0 {
		return false, int(remaining.Seconds()) + 1
	}

	cm.lastUse[ownerID] = now
	return true, 0
}

func FormatCooldownWait(remainingSeconds int) string {
	minutes := remainingSeconds / 60
	seconds := remainingSeconds % 60
	if minutes > 0 {
		return fmt.Sprintf("Command on cooldown, wait %dm%ds before trying again.", minutes, seconds)
	}
	return fmt.Sprintf("Command on cooldown, wait %ds before trying again.", seconds)
}
