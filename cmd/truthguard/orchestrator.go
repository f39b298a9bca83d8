// cmd/truthguard/orchestrator.go
package main

import (
	"context"
	"strings"
)

// resultStore is the slice of Store the orchestrator needs; tests substitute
// a stub.
type resultStore interface {
	SaveFactCheck(ctx context.Context, statement, userID string, result *FactCheckResult) (string, error)
}

// evidenceSource is the slice of EvidenceGatherer the orchestrator needs.
type evidenceSource interface {
	Gather(ctx context.Context, statement string) []EvidenceItem
}

// Orchestrator runs the fact-check control flow: gather evidence, call the
// provider chain with fallback, normalize, and persist best-effort. The
// propagation policy is "never fail louder than necessary": once any
// provider has responded at all the caller gets a 200 with a well-formed
// verdict, however malformed the upstream payload was.
type Orchestrator struct {
	providers []Provider
	evidence  evidenceSource
	store     resultStore
}

// NewOrchestrator wires the orchestrator. evidence and store may be nil;
// both paths then degrade silently.
func NewOrchestrator(providers []Provider, evidence evidenceSource, store resultStore) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		evidence:  evidence,
		store:     store,
	}
}

// Check performs one fact check. The returned error, when non-nil, is always
// a *TruthGuardError carrying its HTTP status.
func (o *Orchestrator) Check(ctx context.Context, req *FactCheckRequest) (*FactCheckResult, error) {
	statement := strings.TrimSpace(req.Statement)
	if statement == "" {
		return nil, NewInvalidInputError("Statement is required")
	}

	var items []EvidenceItem
	if o.evidence != nil {
		items = o.evidence.Gather(ctx, statement)
	}
	GetLogger().Info("Fact-checking statement with %d evidence items", len(items))

	prompt := buildPrompt(statement, items)

	raw, err := o.complete(ctx, prompt, req.Retry)
	if err != nil {
		return nil, err
	}

	result := parseProviderResponse(raw)
	if result.Reasoning == DegradedReasoning {
		IncrementCounter("fallback_results")
	}

	o.persist(ctx, statement, req.UserID, result)
	IncrementCounter("checks_completed")
	return result, nil
}

// complete runs the provider fallback protocol: attempt each configured
// provider in order (reversed when the client set the retry flag), strictly
// sequentially so a fallback never duplicates a billable in-flight call.
func (o *Orchestrator) complete(ctx context.Context, prompt string, retry bool) (string, error) {
	ordered := providersInOrder(o.providers, retry)
	if len(ordered) == 0 {
		return "", NewUnavailableError("No AI providers are configured", nil)
	}

	var lastErr *TruthGuardError
	for _, provider := range ordered {
		callCtx, cancel := context.WithTimeout(ctx, ProviderTimeout)
		raw, err := provider.Complete(callCtx, prompt)
		cancel()

		if err == nil {
			return raw, nil
		}

		IncrementCounter("provider_failures")
		tge, ok := AsTruthGuardError(err)
		if !ok {
			tge = NewProviderError(provider.Name()+" request failed", err)
		}

		// A rejected key is a configuration fault; trying the same key
		// against the next attempt of this request helps nobody.
		if tge.Kind == KindAuthError {
			return "", tge
		}

		GetLogger().Warning("Provider %s failed (%s), falling back: %v", provider.Name(), tge.Kind, err)
		lastErr = tge
	}

	switch lastErr.Kind {
	case KindProviderTimeout, KindQuotaExceeded:
		return "", lastErr
	default:
		return "", NewUnavailableError("All AI providers are unavailable. Please try again later.", lastErr)
	}
}

// persist writes the result when a store is configured and the caller is
// identified. Failures are logged and swallowed; the response already
// carries id: null as a valid value.
func (o *Orchestrator) persist(ctx context.Context, statement, userID string, result *FactCheckResult) {
	if o.store == nil || userID == "" {
		return
	}

	id, err := o.store.SaveFactCheck(ctx, statement, userID, result)
	if err != nil {
		RecordError("persistence", NewError(KindPersistence, "failed to save fact check", err))
		IncrementCounter("db_errors")
		return
	}
	result.ID = &id
}
