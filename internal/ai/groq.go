// Package ai relays polled game data into prompts for the Groq chat API
// (OpenAI-compatible) to produce narrative advice in the Consigliere
// persona.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tornsuite/consigliere/internal/torn"
)

// ErrBusy means the chat service rejected the call for rate limiting; the
// caller should tell the user to retry rather than surface an error dump.
var ErrBusy = errors.New("chat service is rate limited")

const systemPrompt = `You are 'The Consigliere', the loyal right hand of the user (the Boss) in the criminal world of Torn City.

Your style:
- Respectful to the Boss
- Short and to the point
- Tactical in your advice
- A light Italian-mafia flavor

You know Torn terminology: Gym (stat training), Mug (robbing players for cash),
Xanax (energy refill drug), OC (Organized Crime), Chain, War, Faction,
NNB (No Nerve Bar), FHC (Full Happy Chain), Revive, Hospital, Jail.

Your job:
1. Answer Torn City strategy questions
2. Keep the Boss company in character
3. Give gameplay tips and advice
4. Analyze market data and battle logs

IMPORTANT: Never break character. Always address the user as "Boss".`

const crimeAdvisorPrompt = `You are a crime advisor in Torn City. The user gives you their nerve data.

Based on available nerve, recommend the best crime from this list:
- Search for Cash (2 nerve) - for beginners
- Mug Someone (5 nerve) - quick cash, low risk
- Pickpocket Someone (5 nerve) - medium reward
- Larceny (8 nerve) - steal from shops
- Armed Robbery (15 nerve) - rob stores
- Transport Drugs (20 nerve) - high reward
- Plant a Computer Virus (25 nerve) - tech crime
- Grand Theft Auto (35 nerve) - steal cars
- Kidnapping (50 nerve) - ransom victims
- Human Trafficking (60 nerve) - most lucrative

Answer briefly in the Consigliere's voice. Name the one or two best-fitting crimes.`

// Advisor is a Groq-backed narrative advisor.
type Advisor struct {
	client *openai.Client
	model  string
}

// New creates an Advisor against an OpenAI-compatible endpoint. Returns nil
// when apiKey is empty (AI features disabled); all methods on a nil Advisor
// fail with a plain error.
func New(apiKey, baseURL, model string) *Advisor {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Advisor{client: openai.NewClientWithConfig(cfg), model: model}
}

// Chat sends one free-text message in the Consigliere persona.
func (a *Advisor) Chat(ctx context.Context, userText string) (string, error) {
	return a.complete(ctx, systemPrompt, userText, 1024)
}

// AdviseOnCrime asks for a crime recommendation from nerve and level.
func (a *Advisor) AdviseOnCrime(ctx context.Context, nerveCurrent, nerveMax, level int) (string, error) {
	prompt := fmt.Sprintf("The Boss has %d/%d nerve and is level %d. Recommend the best crime.",
		nerveCurrent, nerveMax, level)
	return a.complete(ctx, crimeAdvisorPrompt, prompt, 256)
}

// DailyBrief renders the current snapshot into a situational briefing and
// asks for tactical narrative advice.
func (a *Advisor) DailyBrief(ctx context.Context, snap torn.Snapshot) (string, error) {
	return a.complete(ctx, systemPrompt, briefingPrompt(snap), 512)
}

func (a *Advisor) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if a == nil {
		return "", errors.New("ai advisor is not configured (GROQ_API_KEY unset)")
	}
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", ErrBusy
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// briefingPrompt flattens the parts of a snapshot the model can reason about
// into one compact status block.
func briefingPrompt(snap torn.Snapshot) string {
	return fmt.Sprintf(
		"Current status for %s (level %d):\n"+
			"STATE: %s (%s)\n"+
			"ENERGY: %d/%d  NERVE: %d/%d  HAPPY: %d/%d  LIFE: %d/%d\n"+
			"COOLDOWNS: drug=%ds booster=%ds medical=%ds\n"+
			"TRAVEL: destination=%s time_left=%ds\n"+
			"EDUCATION: time_left=%ds\n\n"+
			"Give the Boss a short tactical briefing on what to do next.",
		snap.Name, snap.Level,
		snap.Status.State, snap.Status.Description,
		snap.Energy.Current, snap.Energy.Maximum,
		snap.Nerve.Current, snap.Nerve.Maximum,
		snap.Happy.Current, snap.Happy.Maximum,
		snap.Life.Current, snap.Life.Maximum,
		snap.Cooldowns.Drug, snap.Cooldowns.Booster, snap.Cooldowns.Medical,
		snap.Travel.Destination, snap.Travel.TimeLeft,
		snap.Education.TimeLeft,
	)
}
