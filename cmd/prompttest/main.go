package main

// Inspect the prompt built for a footprint, and optionally run it through
// the live model pipeline:
//   go run ./cmd/prompttest -input footprint.json -call

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"ecofootprint-backend/internal/llm"
	"ecofootprint-backend/internal/llm/gemini"
	"ecofootprint-backend/internal/recommendations"
	"ecofootprint-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	inputPath := flag.String("input", "", "Path to a footprint JSON file (optional, uses a built-in sample when empty)")
	model := flag.String("model", cfg.LLMModel, "Model name")
	call := flag.Bool("call", false, "Send the prompt to the model and print the normalized outcome")
	flag.Parse()

	input, err := loadInput(*inputPath)
	if err != nil {
		exitErr(err.Error())
	}

	prompt := recommendations.BuildPrompt(input)
	fmt.Println(prompt)

	if !*call {
		return
	}

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		exitErr("GEMINI_API_KEY is required with -call")
	}
	client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, *model)
	if err != nil {
		exitErr(fmt.Sprintf("model client: %v", err))
	}

	svc := &recommendations.Service{
		Gateway: &llm.Gateway{Client: client, Timeout: cfg.LLMTimeout},
		Repo:    recommendations.NewMemoryRepo(),
	}
	outcome := svc.Generate(context.Background(), input, "")

	pretty, err := json.MarshalIndent(outcome.Result, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}
	fmt.Println(string(pretty))
	if outcome.Failed() {
		exitErr(fmt.Sprintf("generation failed: %s", outcome.Message))
	}
}

func loadInput(path string) (recommendations.FootprintInput, error) {
	if strings.TrimSpace(path) == "" {
		return sampleInput(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return recommendations.FootprintInput{}, fmt.Errorf("read input: %v", err)
	}
	var input recommendations.FootprintInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return recommendations.FootprintInput{}, fmt.Errorf("parse input: %v", err)
	}
	return input, nil
}

func sampleInput() recommendations.FootprintInput {
	return recommendations.FootprintInput{
		Date:   "2026-01-15",
		Result: 7.4,
		Transport: recommendations.TransportHabits{
			CarKm:                120,
			PublicKm:             30,
			DomesticFlights:      1,
			InternationalFlights: 0,
		},
		Food: recommendations.FoodHabits{
			RedMeat:    3,
			WhiteMeat:  4,
			Dairy:      7,
			Vegetarian: 2,
		},
		Energy: recommendations.EnergyHabits{
			ApplianceHours: 6,
			LightBulbs:     8,
			GasTanks:       1,
			HVACHours:      4,
		},
		Waste: recommendations.WasteHabits{
			TrashBags:      3,
			FoodWaste:      2,
			PlasticBottles: 10,
			PaperPackages:  4,
		},
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
