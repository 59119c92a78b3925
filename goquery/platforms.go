package goquery

import "github.com/fwojciec/tablewatch"

// NewGenericProfile returns the fallback profile: the whole document is
// searched and the document title is used as is.
func NewGenericProfile() *Profile {
	return NewProfile(tablewatch.PlatformGeneric, ProfileConfig{})
}

// NewChatGPTProfile returns the profile for chatgpt.com.
func NewChatGPTProfile() *Profile {
	return NewProfile(tablewatch.PlatformChatGPT, ProfileConfig{
		ScopeSelectors: []string{
			"[data-message-author-role='assistant']",
			".markdown.prose",
		},
		TitleSelectors: []string{"nav a[aria-current='page']", "nav li.active a"},
		TitleSuffixes:  []string{" | ChatGPT", " - ChatGPT"},
	})
}

// NewClaudeProfile returns the profile for claude.ai.
func NewClaudeProfile() *Profile {
	return NewProfile(tablewatch.PlatformClaude, ProfileConfig{
		ScopeSelectors: []string{
			".font-claude-message",
			"[data-is-streaming]",
		},
		TitleSelectors: []string{"[data-testid='chat-menu-trigger']"},
		TitleSuffixes:  []string{" - Claude", " | Claude"},
	})
}

// NewGeminiProfile returns the profile for gemini.google.com.
func NewGeminiProfile() *Profile {
	return NewProfile(tablewatch.PlatformGemini, ProfileConfig{
		ScopeSelectors: []string{
			"message-content",
			".model-response-text",
			"model-response",
		},
		TitleSelectors: []string{".conversation.selected .conversation-title"},
		TitleSuffixes:  []string{" - Gemini", " | Gemini"},
	})
}

// NewDeepSeekProfile returns the profile for chat.deepseek.com.
func NewDeepSeekProfile() *Profile {
	return NewProfile(tablewatch.PlatformDeepSeek, ProfileConfig{
		ScopeSelectors: []string{".ds-markdown"},
		TitleSuffixes:  []string{" - DeepSeek"},
	})
}

// NewPerplexityProfile returns the profile for perplexity.ai.
func NewPerplexityProfile() *Profile {
	return NewProfile(tablewatch.PlatformPerplexity, ProfileConfig{
		ScopeSelectors: []string{".prose", "[id^='markdown-content']"},
		TitleSelectors: []string{"h1"},
		TitleSuffixes:  []string{" | Perplexity", " - Perplexity"},
	})
}

// NewGrokProfile returns the profile for grok.com.
func NewGrokProfile() *Profile {
	return NewProfile(tablewatch.PlatformGrok, ProfileConfig{
		ScopeSelectors: []string{".response-content-markdown", ".message-bubble"},
		TitleSuffixes:  []string{" - Grok", " | Grok"},
	})
}

// NewCopilotProfile returns the profile for copilot.microsoft.com.
func NewCopilotProfile() *Profile {
	return NewProfile(tablewatch.PlatformCopilot, ProfileConfig{
		ScopeSelectors: []string{"[data-content='ai-message']", ".ac-textBlock"},
		TitleSuffixes:  []string{" | Microsoft Copilot", " - Copilot"},
	})
}
