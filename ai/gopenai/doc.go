// Package gopenai implements the ai interfaces on the go-openai SDK. It is
// selected with AI_PROVIDER=openai and talks to api.openai.com unless a
// different base URL is configured.
//
// Client errors that cannot succeed on a second attempt (bad request,
// authentication, unknown model) are wrapped with retry.Permanent.
package gopenai
