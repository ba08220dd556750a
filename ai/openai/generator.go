// Copyright 2025 Ironleaf Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ironleaf/docmind/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
// It holds one client per model tier so standard and mini requests can
// target different models on the same host.
type Generator struct {
	standard      llms.Model
	mini          llms.Model
	standardModel string
	miniModel     string
	logger        *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create one OpenAI client per tier
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	standard, err := openai.New(
		openai.WithBaseURL(config.GenerationHost),
		openai.WithToken("none"),
		openai.WithModel(config.StandardModel),
	)
	if err != nil {
		return nil, err
	}

	mini, err := openai.New(
		openai.WithBaseURL(config.GenerationHost),
		openai.WithToken("none"),
		openai.WithModel(config.MiniModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		standard:      standard,
		mini:          mini,
		standardModel: config.StandardModel,
		miniModel:     config.MiniModel,
		logger:        slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate sends a system and user prompt to the model selected by tier.
// Responses are requested in JSON mode with temperature 0 so repeated runs
// over the same context stay comparable.
func (g *Generator) Generate(ctx context.Context, system, user string, tier ai.ModelTier) (*ai.GenerationResult, error) {
	client, model := g.clientFor(tier)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(system),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(user),
			},
		},
	}

	response, err := client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		g.logger.Error("failed to generate content", "model", model, "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model", "model", model)
		return nil, errors.New("generate: model returned no choices")
	}

	choice := response.Choices[0]
	result := &ai.GenerationResult{
		Text:      choice.Content,
		Model:     model,
		TokensIn:  infoInt(choice.GenerationInfo, "PromptTokens"),
		TokensOut: infoInt(choice.GenerationInfo, "CompletionTokens"),
	}

	g.logger.Debug("generated content",
		"model", model,
		"tokens_in", result.TokensIn,
		"tokens_out", result.TokensOut)

	return result, nil
}

// clientFor maps a tier to its client and model name.
// Unknown tiers fall back to the standard client.
func (g *Generator) clientFor(tier ai.ModelTier) (llms.Model, string) {
	if tier == ai.TierMini {
		return g.mini, g.miniModel
	}
	return g.standard, g.standardModel
}

// infoInt reads an integer value from a generation info map.
// Services report token counts as int or float64 depending on the backend.
func infoInt(info map[string]any, key string) int {
	if info == nil {
		return 0
	}
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
