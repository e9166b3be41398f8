package model

import (
	"fmt"
	"log"
	"math"

	"github.com/grexie/classifier/pkg/nn"
	"github.com/jedib0t/go-pretty/v6/progress"
	"gonum.org/v1/gonum/mat"
)

// DivergenceError stops training as soon as the loss is NaN or infinite.
// Parameters are left as they were before the failing step.
type DivergenceError struct {
	Step int
	Loss float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("training diverged at step %d: loss is %v", e.Step, e.Loss)
}

// Train runs exactly steps full-batch forward/backward/update cycles over x
// and y and returns the loss recorded before each update. On error the
// history recorded so far is returned with it.
func Train(pw progress.Writer, net *nn.DenseClassifier, loss nn.Loss, opt nn.Optimizer, x, y *mat.Dense, steps int, logEvery int) (LossHistory, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be > 0 (got %d)", steps)
	}

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: "Training",
			Total:   int64(steps),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}
	fail := func(err error) error {
		if tracker != nil {
			tracker.MarkAsErrored()
		}
		return err
	}

	history := make(LossHistory, 0, steps)
	for step := 1; step <= steps; step++ {
		pred, cache, err := net.Forward(x)
		if err != nil {
			return history, fail(fmt.Errorf("step %d: forward pass failed: %w", step, err))
		}

		l, err := loss.Compute(pred, y)
		if err != nil {
			return history, fail(fmt.Errorf("step %d: loss failed: %w", step, err))
		}
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return history, fail(&DivergenceError{Step: step, Loss: l})
		}

		dPred, err := loss.Gradient(pred, y)
		if err != nil {
			return history, fail(fmt.Errorf("step %d: loss gradient failed: %w", step, err))
		}
		grads, err := net.Backward(cache, dPred)
		if err != nil {
			return history, fail(fmt.Errorf("step %d: backward pass failed: %w", step, err))
		}
		if err := net.ApplyGradients(grads, opt); err != nil {
			return history, fail(fmt.Errorf("step %d: optimizer step failed: %w", step, err))
		}

		history = append(history, l)

		if tracker != nil {
			tracker.SetValue(int64(step))
			tracker.UpdateMessage(fmt.Sprintf("Training - L: %.6f", l))
		}
		if logEvery > 0 && step%logEvery == 0 {
			log.Printf("Loss at time step %d: %.4f", step, l)
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}
	return history, nil
}
