// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/employee-app/internal/lib/job"
	"github.com/deppfellow/employee-app/internal/repository"
	"github.com/deppfellow/employee-app/internal/server"
)

type Services struct {
	Employee *EmployeeService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var notifier EmployeeNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Employee: NewEmployeeService(repos.Employee, notifier, s.Logger),
		Job:      s.Job,
	}
}
