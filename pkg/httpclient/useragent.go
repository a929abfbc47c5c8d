package httpclient

import "math/rand"

// defaultAgents is a small pool of current desktop browser identities.
// One is picked uniformly at random per request so consecutive fetches
// do not present the same fingerprint.
var defaultAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36 Edg/125.0.0.0",
}

// AgentPool hands out random User-Agent strings.
type AgentPool struct {
	agents []string
}

// NewAgentPool builds a pool from the given agents, falling back to the
// built-in browser list when none are provided.
func NewAgentPool(agents ...string) *AgentPool {
	if len(agents) == 0 {
		agents = defaultAgents
	}
	cp := make([]string, len(agents))
	copy(cp, agents)
	return &AgentPool{agents: cp}
}

// Random returns a uniformly random User-Agent from the pool.
func (p *AgentPool) Random() string {
	if p == nil || len(p.agents) == 0 {
		return defaultAgents[rand.Intn(len(defaultAgents))]
	}
	return p.agents[rand.Intn(len(p.agents))]
}
