package prism

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/imamik/nfsensor/internal/util/poll"
)

type taskWire struct {
	UUID               string `json:"uuid"`
	Status             string `json:"status"`
	ErrorDetail        string `json:"error_detail"`
	PercentageComplete int    `json:"percentage_complete"`
}

// WaitForTask polls a task until it succeeds, fails, or the task timeout
// elapses.
func (c *RealClient) WaitForTask(ctx context.Context, taskUUID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Task)
	defer cancel()

	err := poll.Until(ctx, func(ctx context.Context) (bool, error) {
		var task taskWire
		if err := c.do(ctx, http.MethodGet, "tasks/"+url.PathEscape(taskUUID), nil, &task); err != nil {
			return false, fmt.Errorf("failed to read task %s: %w", taskUUID, err)
		}

		switch strings.ToUpper(task.Status) {
		case "SUCCEEDED":
			return true, nil
		case "FAILED", "ABORTED":
			return false, &TaskError{TaskUUID: taskUUID, Status: task.Status, Detail: task.ErrorDetail}
		default:
			return false, nil
		}
	},
		poll.WithMaxChecks(c.timeouts.TaskPollMaxRuns),
		poll.WithInitialDelay(c.timeouts.TaskPoll),
		poll.WithMaxDelay(c.timeouts.TaskPollMax),
	)

	if errors.Is(err, poll.ErrExhausted) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("task %s did not finish in time: %w", taskUUID, err)
	}
	return err
}
