package tutor

import (
	"context"
	"sync"
)

// EvaluationResult is a finished asynchronous evaluation. Transcript is the
// answer that was judged so callers can discard results for answers that
// have since changed.
type EvaluationResult struct {
	Turn       int
	Transcript string
	Evaluation Evaluation
	Err        error
}

// Evaluator runs answer evaluations in the background. Results are
// collected with Consume.
type Evaluator struct {
	svc *Service

	mu   sync.Mutex
	done []EvaluationResult
	wg   sync.WaitGroup
}

// NewEvaluator creates an Evaluator on svc.
func NewEvaluator(svc *Service) *Evaluator {
	return &Evaluator{svc: svc}
}

// Request starts evaluating transcript as the answer of turn.
func (e *Evaluator) Request(ctx context.Context, turn int, question, transcript string, paragraphs []string) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ev, err := e.svc.EvaluateAnswer(ctx, question, transcript, paragraphs)
		e.mu.Lock()
		defer e.mu.Unlock()
		e.done = append(e.done, EvaluationResult{Turn: turn, Transcript: transcript, Evaluation: ev, Err: err})
	}()
}

// Consume returns and clears the finished results in completion order.
func (e *Evaluator) Consume() []EvaluationResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.done
	e.done = nil
	return out
}

// Wait blocks until every requested evaluation has finished.
func (e *Evaluator) Wait() {
	e.wg.Wait()
}
