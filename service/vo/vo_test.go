package vo

import (
	"encoding/json"
	"testing"
)

// The snake_case example keys are a wire contract: downstream training jobs
// read fewshot_examples.json with exactly these field names.
func TestExampleJSONKeys(t *testing.T) {
	ex := Example{
		ParagraphA: "Le marché se tient samedi.",
		Transition: "Par ailleurs,",
		ParagraphB: "la piscine ferme en août.",
	}

	data, err := json.Marshal(ex)
	if err != nil {
		t.Fatalf("Failed to marshal Example: %v", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal Example: %v", err)
	}

	for _, key := range []string{"paragraph_a", "transition", "paragraph_b"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("expected key %q in %s", key, string(data))
		}
	}
}

func TestExtractionResultOmitsEmptyTables(t *testing.T) {
	result := ExtractionResult{
		Examples:          []Example{},
		TransitionCounts:  map[string]int{},
		UniqueTransitions: []string{},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal ExtractionResult: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal ExtractionResult: %v", err)
	}
	if _, ok := raw["duplicateTransitions"]; ok {
		t.Fatal("expected duplicateTransitions to be omitted when empty")
	}
	if _, ok := raw["overflowTransitions"]; ok {
		t.Fatal("expected overflowTransitions to be omitted when empty")
	}
}
