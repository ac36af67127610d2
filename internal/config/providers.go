package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	NeedsBaseURL bool
	SignupURL    string
	EnvKeys      []string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "zhipu",
		Name:         "Zhipu GLM",
		Description:  "Default, strong Chinese output",
		NeedsAPIKey:  true,
		SignupURL:    "https://open.bigmodel.cn/usercenter/apikeys",
		EnvKeys:      []string{"ZHIPUAI_API_KEY", "ZHIPU_API_KEY"},
		Models:       []string{"glm-4-flash", "glm-4-air", "glm-4-plus"},
		DefaultModel: "glm-4-flash",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		NeedsAPIKey:  true,
		SignupURL:    "https://platform.openai.com/api-keys",
		EnvKeys:      []string{"OPENAI_API_KEY"},
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.groq.com/keys",
		EnvKeys:      []string{"GROQ_API_KEY"},
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		SignupURL:    "https://openrouter.ai/keys",
		EnvKeys:      []string{"OPENROUTER_API_KEY"},
		Models:       []string{"anthropic/claude-3.5-sonnet", "openai/gpt-4o", "meta-llama/llama-3.1-70b-instruct"},
		DefaultModel: "meta-llama/llama-3.1-70b-instruct",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, great writing",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.anthropic.com/",
		EnvKeys:      []string{"ANTHROPIC_API_KEY"},
		Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		DefaultModel: "claude-3-5-haiku-20241022",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		NeedsAPIKey:  false,
		Models:       []string{"qwen2.5:7b", "llama3.1:8b", "mistral:7b"},
		DefaultModel: "qwen2.5:7b",
	},
	{
		ID:           "custom",
		Name:         "Custom",
		Description:  "Any OpenAI-compatible endpoint",
		NeedsAPIKey:  false,
		NeedsBaseURL: true,
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
