// ABOUTME: Agent dashboards for the Slack and Web sections
// ABOUTME: Read-only views over an agent directory

package screens

import "github.com/2389/tymex-console/internal/agents"

type dashboard struct {
	nav    Navigation
	header Header
	dir    agents.Directory
}

func (d *dashboard) Nav() Navigation        { return d.nav }
func (d *dashboard) Header() Header         { return d.header }
func (d *dashboard) Agents() []agents.Agent { return d.dir.All() }
