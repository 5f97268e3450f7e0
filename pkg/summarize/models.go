package summarize

// ModelInfo describes one selectable summary model and its context
// ceiling.
type ModelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Developer string `json:"developer"`
	MaxTokens int    `json:"max_tokens"`
}

// DefaultModelID is the model used when the caller does not pick one.
const DefaultModelID = "mixtral-8x7b-32768"

// Models is the curated catalog of selectable Groq-hosted models.
var Models = []ModelInfo{
	{ID: "gemma-7b-it", Name: "Gemma-7b-it", Developer: "Google", MaxTokens: 8192},
	{ID: "gemma2-9b-it", Name: "Gemma2-9b-it", Developer: "Google", MaxTokens: 8192},
	{ID: "llama3-70b-8192", Name: "LLaMA3-70b-8192", Developer: "Meta", MaxTokens: 8192},
	{ID: "llama3-8b-8192", Name: "LLaMA3-8b-8192", Developer: "Meta", MaxTokens: 8192},
	{ID: "mixtral-8x7b-32768", Name: "Mixtral-8x7b-Instruct-v0.1", Developer: "Mistral", MaxTokens: 32768},
}

// LookupModel resolves a model id from the catalog.
func LookupModel(id string) (ModelInfo, bool) {
	for _, m := range Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// ClampTokens bounds a requested max_tokens to the model's ceiling.
// Non-positive requests and unknown models get the full ceiling of the
// model (or of the default model).
func ClampTokens(modelID string, requested int) int {
	m, ok := LookupModel(modelID)
	if !ok {
		m, _ = LookupModel(DefaultModelID)
	}
	if requested <= 0 || requested > m.MaxTokens {
		return m.MaxTokens
	}
	return requested
}
