package openai

import (
	"fmt"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Setup validates credentials and the target endpoint. OPENAI_BASE_URL
// redirects the requests to any openai compatible server, ollama included,
// in which case the api key may be a dummy value but must still be set.
func (g *ChatGPT) Setup() error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("environment variable 'OPENAI_API_KEY' not set")
	}
	g.apiKey = apiKey
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		g.URL = baseURL
	}
	if g.URL == "" {
		g.URL = ChatURL
	}
	g.client = &http.Client{}
	g.debug = misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("OPENAI_DEBUG"))
	return nil
}
