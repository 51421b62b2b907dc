package optimize

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Veraticus/financeflow/internal/llm"
)

var errNoClient = errors.New("no language model client configured")

// Invoker sends rendered prompts to a language model.
// It does not retry, cache or rate limit; each call is one round trip.
type Invoker struct {
	client llm.Client
}

// NewInvoker creates an Invoker around client.
func NewInvoker(client llm.Client) *Invoker {
	return &Invoker{client: client}
}

// Invoke sends prompt with the given output schema and returns the raw
// completion with any markdown code fence removed. Failures are returned as
// an *Error of kind InvocationFailed wrapping the cause.
func (i *Invoker) Invoke(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	if i == nil || i.client == nil {
		return nil, &Error{Kind: KindInvocationFailed, Err: errNoClient}
	}

	completion, err := i.client.Complete(ctx, llm.Request{
		System:     SystemRole,
		Prompt:     prompt,
		SchemaName: schema.Name,
		Schema:     schema.JSON(),
	})
	if err != nil {
		return nil, &Error{Kind: KindInvocationFailed, Err: err}
	}

	return json.RawMessage(llm.CleanMarkdownWrapper(completion)), nil
}
