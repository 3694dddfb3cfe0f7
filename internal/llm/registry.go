package llm

// Info describes one selectable backend for CLI and HTTP listings.
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"` // "configured" or "missing key"
}

// Keys holds the per-provider credentials relevant to availability checks.
type Keys struct {
	Anthropic string
	Gemini    string
	OpenAI    string
}

// Available lists every backend with its configuration status. Ollama is
// always listed as configured: it is a local server and needs no key.
func Available(keys Keys) []Info {
	status := func(key string) string {
		if key != "" {
			return "configured"
		}
		return "missing key"
	}
	return []Info{
		{Name: "anthropic", DisplayName: "Claude (Anthropic)", Status: status(keys.Anthropic)},
		{Name: "gemini", DisplayName: "Gemini (Google)", Status: status(keys.Gemini)},
		{Name: "openai", DisplayName: "GPT (OpenAI)", Status: status(keys.OpenAI)},
		{Name: "ollama", DisplayName: "Ollama (local)", Status: "configured"},
	}
}
