// Package llm provides language model clients used for budget suggestions.
// It supports OpenAI and Anthropic over HTTP and the Claude Code CLI, all
// behind the single-turn Client interface. Clients do not retry, cache, or
// rate limit; callers decide what to do with a failed completion.
package llm
