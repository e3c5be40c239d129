package categorizer

import "context"

// Oracle is an external text classification service. It receives one prompt and
// returns free-form text that is expected to contain a JSON object.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
