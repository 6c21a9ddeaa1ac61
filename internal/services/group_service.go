package services

import (
	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
)

type GroupService interface {
	Create(group *models.MonitorGroup) error
	Get(id uint) (*models.MonitorGroup, error)
	List() ([]models.MonitorGroup, error)
	Update(id uint, updates *models.MonitorGroup) (*models.MonitorGroup, error)
	Delete(id uint) error
}

type groupService struct {
	groupRepo repository.GroupRepository
	locks     entityLocks
}

func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

func (s *groupService) Create(group *models.MonitorGroup) error {
	if group.Name == "" {
		return trace.BadParameter("group name is required")
	}
	return trace.Wrap(s.groupRepo.Create(group))
}

func (s *groupService) Get(id uint) (*models.MonitorGroup, error) {
	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if group == nil {
		return nil, trace.NotFound("monitor group %d not found", id)
	}
	return group, nil
}

func (s *groupService) List() ([]models.MonitorGroup, error) {
	groups, err := s.groupRepo.GetAll()
	return groups, trace.Wrap(err)
}

func (s *groupService) Update(id uint, updates *models.MonitorGroup) (*models.MonitorGroup, error) {
	defer s.locks.lock(id)()

	existing, err := s.Get(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if updates.Name == "" {
		return nil, trace.BadParameter("group name is required")
	}

	existing.Name = updates.Name
	existing.Order = updates.Order

	if err := s.groupRepo.Update(existing); err != nil {
		return nil, trace.Wrap(err)
	}
	return existing, nil
}

// Delete ungroups member monitors via the repository; it never deletes them.
func (s *groupService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.groupRepo.Delete(id))
}
