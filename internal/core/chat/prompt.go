package chat

import (
	"fmt"
	"strings"
)

// FormatTranscript numbers the transcript sentence by sentence so answers
// can point back at specific lines.
func FormatTranscript(text string) string {
	var lines []string
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, sentence))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt combines the formatted transcript and the user's question into
// a single grounded prompt.
func BuildPrompt(transcript, question string) string {
	return fmt.Sprintf(`You are a helpful assistant that answers questions based on the following transcription. If a statement is entered you can answer whether it is true or false based on the transcript or your own research.
If the answer cannot be found in the transcription, say "I cannot find that information in the transcription, but based on what I know", then answer the question.

Transcription:
%s

Question: %s
Answer:`, transcript, question)
}
