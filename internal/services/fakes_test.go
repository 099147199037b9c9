package services

import (
	"context"
	"sync"
)

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeProvider struct {
	fakeGenerator
	name  string
	block bool
}

func (f *fakeProvider) Name() string {
	return f.name
}

func (f *fakeProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	if f.block {
		<-ctx.Done()
		f.fakeGenerator.mu.Lock()
		f.fakeGenerator.calls++
		f.fakeGenerator.mu.Unlock()
		return "", ctx.Err()
	}
	return f.fakeGenerator.GenerateText(ctx, prompt)
}
