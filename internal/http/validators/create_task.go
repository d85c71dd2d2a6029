package validators

import (
	"fmt"
	"strconv"

	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Label == "" {
		return fmt.Errorf("%w: label is required", apperrors.ErrInvalidPayload)
	}
	if r.Status == "" {
		return fmt.Errorf("%w: status is required", apperrors.ErrInvalidPayload)
	}
	return nil
}

func ValidateUpdateStatusRequest(r *dto.UpdateStatusRequest) error {
	if r.Status == "" {
		return fmt.Errorf("%w: status is required", apperrors.ErrInvalidPayload)
	}
	return nil
}

func ParseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidTaskID
	}
	return uint(id), nil
}

func ValidateOrder(order string) error {
	switch order {
	case "", dto.OrderPriority, dto.OrderCreatedAt:
		return nil
	}
	return fmt.Errorf("%w: unknown order %q", apperrors.ErrInvalidPayload, order)
}
