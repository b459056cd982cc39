// Package llm provides language model clients for document tagging.
// It supports Google Gemini, OpenAI, Anthropic and a local Ollama server,
// with retry logic, rate limiting, a circuit breaker and response caching.
package llm
