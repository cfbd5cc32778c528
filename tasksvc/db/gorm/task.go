package gorm

import (
	"errors"

	"github.com/nagomiya/todokit/tasksvc"
	stdgorm "gorm.io/gorm"
)

type taskRepository struct {
	db *stdgorm.DB
}

func NewTaskRepository(db *stdgorm.DB) tasksvc.TaskRepository {
	return &taskRepository{db}
}

func (t taskRepository) Create(name, comment string, done bool, ownerID uint64) (tasksvc.Task, error) {
	task := tasksvc.Task{Name: name, Comment: comment, Done: done, OwnerID: ownerID}
	result := t.db.Create(&task)

	return task, result.Error
}

func (t taskRepository) FindAll(ownerID uint64, skip, limit int) ([]tasksvc.Task, error) {
	var tasks []tasksvc.Task
	result := t.db.
		Where("owner_id = ?", ownerID).
		Offset(skip).
		Limit(limit).
		Find(&tasks)

	return tasks, result.Error
}

// Find combines the task and owner ids in a single AND predicate so that a
// foreign task and a missing one both surface as ErrTaskNotFound.
func (t taskRepository) Find(ownerID, taskID uint64) (tasksvc.Task, error) {
	var task tasksvc.Task
	result := t.db.Where("id = ? AND owner_id = ?", taskID, ownerID).First(&task)

	if errors.Is(result.Error, stdgorm.ErrRecordNotFound) {
		return tasksvc.Task{}, tasksvc.ErrTaskNotFound
	}

	return task, result.Error
}

func (t taskRepository) Update(task tasksvc.Task) (tasksvc.Task, error) {
	tk, err := t.Find(task.OwnerID, task.ID)
	if err != nil {
		return tasksvc.Task{}, err
	}

	result := t.db.Model(&tk).Updates(
		map[string]interface{}{
			"name":    task.Name,
			"comment": task.Comment,
			"done":    task.Done,
		})
	if result.Error != nil {
		return tasksvc.Task{}, result.Error
	}

	return t.Find(task.OwnerID, task.ID)
}

func (t taskRepository) Delete(ownerID, taskID uint64) error {
	result := t.db.
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&tasksvc.Task{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tasksvc.ErrTaskNotFound
	}
	return nil
}
