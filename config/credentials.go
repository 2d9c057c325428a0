package config

import "os"

// Credentials carries every secret the pipeline needs. They are read from
// the environment exactly once and handed to components at construction
// time, so tests can inject values without touching the process env.
type Credentials struct {
	GeminiAPIKey  string
	BloggerAPIKey string
	BloggerBlogID string
}

// CredentialsFromEnv reads GEMINI_API_KEY, BLOGGER_API_KEY and
// BLOGGER_BLOG_ID. Missing values stay empty; the publisher treats missing
// Blogger credentials as a soft failure and a missing Gemini key surfaces
// as a generation failure.
func CredentialsFromEnv() Credentials {
	return Credentials{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		BloggerAPIKey: os.Getenv("BLOGGER_API_KEY"),
		BloggerBlogID: os.Getenv("BLOGGER_BLOG_ID"),
	}
}

// HasBloggerCredentials reports whether both publishing credentials are set.
func (c Credentials) HasBloggerCredentials() bool {
	return c.BloggerAPIKey != "" && c.BloggerBlogID != ""
}
