// agent is the embeddable surface of auto-tool-agent.
//
// An agent takes a natural language query, plans which Python tools it
// needs, writes and reviews the missing ones into a git versioned
// sandbox, then answers the query by calling them. The difference
// between agent A and agent B is the provider, the model, the system
// prompt and the sandbox they accumulate tools in.
//
// This package streamlines the creation of such agents for use inside
// other programs, without the CLI.
package agent
