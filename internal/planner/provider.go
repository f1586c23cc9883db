package planner

import "context"

//go:generate mockgen -source=$GOFILE -destination=provider_mocks_test.go -package=planner_test

// Request carries both the rendered prompts and the brief they were built
// from, so offline providers can work from structured data.
type Request struct {
	System string
	User   string
	Brief  Brief
}

// Provider returns the raw plan text for a request. The text is untrusted
// and goes through ParsePlan.
type Provider interface {
	SendPrompt(ctx context.Context, req Request) (string, error)
}
