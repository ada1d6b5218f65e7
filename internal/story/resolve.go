package story

import (
	"context"
	"fmt"
	"log"
	"time"

	"StoryCuts/internal/config"
)

// GeneratePath is where the proxy serves story requests.
const GeneratePath = "/api/generate"

// Discoverer looks for a story proxy on the local network and returns its
// host:port.
type Discoverer func(ctx context.Context, timeout time.Duration) (string, error)

// Resolve picks the generator for a board: an explicit endpoint first, then
// a proxy found on the LAN, then the offline generator.
func Resolve(ctx context.Context, cfg config.StoryConfig, discover Discoverer) Generator {
	if cfg.Offline {
		log.Printf("[STORY] Offline mode configured")
		return OfflineGenerator{Delay: 800 * time.Millisecond}
	}
	if cfg.Endpoint != "" {
		log.Printf("[STORY] Using configured endpoint %s", cfg.Endpoint)
		return NewHTTPGenerator(cfg.Endpoint)
	}
	if cfg.Discover && discover != nil {
		addr, err := discover(ctx, cfg.DiscoverTimeout)
		if err == nil {
			endpoint := fmt.Sprintf("http://%s%s", addr, GeneratePath)
			log.Printf("[STORY] Discovered story proxy at %s", endpoint)
			return NewHTTPGenerator(endpoint)
		}
		log.Printf("[STORY] No story proxy found: %v", err)
	}
	log.Printf("[STORY] Falling back to offline generator")
	return OfflineGenerator{Delay: 800 * time.Millisecond}
}
