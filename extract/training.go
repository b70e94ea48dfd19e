package extract

import (
	"fmt"

	"github.com/foomo/transitions-mcp/service/vo"
)

// SystemInstruction is the fixed system prompt of every training record.
const SystemInstruction = "Insert a short, natural transition phrase between two news paragraphs."

// TrainingRecord maps one example to its chat-style fine-tuning row: the
// two paragraphs go into the user message, the transition is the expected
// assistant answer.
func TrainingRecord(ex vo.Example) vo.TrainingRecord {
	return vo.TrainingRecord{
		Messages: []vo.Message{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: fmt.Sprintf("Paragraph A: %s\nParagraph B: %s", ex.ParagraphA, ex.ParagraphB)},
			{Role: "assistant", Content: ex.Transition},
		},
	}
}

// TrainingRecords maps all examples in order.
func TrainingRecords(examples []vo.Example) []vo.TrainingRecord {
	records := make([]vo.TrainingRecord, len(examples))
	for i, ex := range examples {
		records[i] = TrainingRecord(ex)
	}
	return records
}
