// Package prompt builds the single-shot completion prompt sent to the model.
// Small local models follow a fill-in-the-blank template far better than a
// chat transcript, so the prompt ends on "COMMAND:" and the stop sequences
// cut generation at the first line break or echoed label.
package prompt

import "fmt"

// StopSequences end generation once the model has produced one command.
var StopSequences = []string{"USER REQUEST:", "COMMAND:", "\n", "User:"}

// Build returns the prompt for request, embedding the optional reference
// context loaded from extra.md.
func Build(request, extraContext string) string {
	return fmt.Sprintf(`REFERENCE DATA:
%s

TASK: Convert the following request into a raw Termux command. Output ONLY the command.
USER REQUEST: %s
COMMAND:`, extraContext, request)
}
