package tasksvc

import "errors"

type Task struct {
	ID      uint64 `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"size:100;not null"`
	Comment string `json:"comment" gorm:"size:500"`
	Done    bool   `json:"done" gorm:"not null;default:false"`
	OwnerID uint64 `json:"owner_id" gorm:"index;not null"`
}

// TaskRepository is ownership-scoped: every lookup and mutation carries the
// owner's id and must combine it with the task id in a single predicate.
// A task that exists but belongs to someone else is indistinguishable from
// one that does not exist.
type TaskRepository interface {
	Create(name, comment string, done bool, ownerID uint64) (Task, error)
	FindAll(ownerID uint64, skip, limit int) ([]Task, error)
	Find(ownerID, taskID uint64) (Task, error)
	Update(task Task) (Task, error)
	Delete(ownerID, taskID uint64) error
}

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTaskNotFound    = errors.New("task not found")
)
